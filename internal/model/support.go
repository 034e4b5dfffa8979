package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupportStatus is the lifecycle state of a ticket.
type SupportStatus string

const (
	StatusOpen       SupportStatus = "open"
	StatusInProgress SupportStatus = "in_progress"
	StatusResolved   SupportStatus = "resolved"
	StatusClosed     SupportStatus = "closed"
)

var statusRank = map[SupportStatus]int{
	StatusOpen:       0,
	StatusInProgress: 1,
	StatusResolved:   2,
	StatusClosed:     3,
}

// Valid reports whether s is a known status.
func (s SupportStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo allows only forward moves along
// open -> in_progress -> resolved -> closed. Steps may be skipped; closed is terminal.
func (s SupportStatus) CanTransitionTo(next SupportStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Accepted priorities and inquiry types.
var (
	Priorities   = []string{"low", "medium", "high", "urgent"}
	InquiryTypes = []string{"general", "technical", "account", "billing", "feature", "bug", "other"}
)

// SupportResponse is an admin reply attached to a ticket.
type SupportResponse struct {
	Author    string    `json:"author" bson:"author"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// SupportMessage is a support ticket.
type SupportMessage struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Phone       *string            `json:"phone" bson:"phone"`
	InquiryType string             `json:"inquiryType" bson:"inquiryType"`
	Priority    string             `json:"priority" bson:"priority"`
	Subject     string             `json:"subject" bson:"subject"`
	Message     string             `json:"message" bson:"message"`
	Status      SupportStatus      `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
	Responses   []SupportResponse  `json:"responses" bson:"responses"`
	AssignedTo  *string            `json:"assignedTo" bson:"assignedTo"`
	Tags        []string           `json:"tags" bson:"tags"`
}

// SupportFilter narrows a ticket listing. Empty fields match everything.
type SupportFilter struct {
	Status      string
	Priority    string
	InquiryType string
}

// SupportStats is the admin dashboard summary.
type SupportStats struct {
	TotalMessages  int64            `json:"total_messages"`
	StatusCounts   map[string]int64 `json:"status_counts"`
	PriorityCounts map[string]int64 `json:"priority_counts"`
	InquiryCounts  map[string]int64 `json:"inquiry_counts"`
	RecentMessages []SupportMessage `json:"recent_messages"`
}
