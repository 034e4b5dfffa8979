package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

const (
	defaultSupportPageSize = 20
	maxSupportPageSize     = 100
	recentSupportMessages  = 5
)

// SubmitInput is a support request from the contact form.
type SubmitInput struct {
	Name        string
	Email       string
	Phone       *string
	InquiryType string
	Priority    string
	Subject     string
	Message     string
}

// SupportPage is one page of support messages.
type SupportPage struct {
	Messages []model.SupportMessage `json:"messages"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
	Total    int64                  `json:"total"`
	Pages    int                    `json:"pages"`
}

// SupportService defines the support ticket use cases.
type SupportService interface {
	Submit(ctx context.Context, in SubmitInput) (*model.SupportMessage, error)
	List(ctx context.Context, f model.SupportFilter, page, limit int) (*SupportPage, error)
	Get(ctx context.Context, id string) (*model.SupportMessage, error)

	// UpdateStatus moves a ticket forward along open, in_progress, resolved,
	// closed. Backward moves and concurrent changes yield ErrInvalidStatusTransition.
	UpdateStatus(ctx context.Context, id string, status model.SupportStatus) error

	Stats(ctx context.Context) (*model.SupportStats, error)
}

type supportService struct {
	repo repository.SupportRepository
	now  func() time.Time
}

// NewSupportService constructs a new SupportService.
func NewSupportService(repo repository.SupportRepository) SupportService {
	return &supportService{repo: repo, now: time.Now}
}

func (s *supportService) Submit(ctx context.Context, in SubmitInput) (*model.SupportMessage, error) {
	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	if priority == "" {
		priority = "medium"
	}
	inquiry := strings.ToLower(strings.TrimSpace(in.InquiryType))
	if inquiry == "" {
		inquiry = "general"
	}
	var phone *string
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			phone = &p
		}
	}

	now := s.now().UTC()
	msg, err := s.repo.Create(ctx, &model.SupportMessage{
		Name:        strings.TrimSpace(in.Name),
		Email:       normalizeEmail(in.Email),
		Phone:       phone,
		InquiryType: inquiry,
		Priority:    priority,
		Subject:     strings.TrimSpace(in.Subject),
		Message:     strings.TrimSpace(in.Message),
		Status:      model.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		Responses:   []model.SupportResponse{},
		Tags:        []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("create support message: %w", err)
	}
	return msg, nil
}

func (s *supportService) List(ctx context.Context, f model.SupportFilter, page, limit int) (*SupportPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultSupportPageSize
	}
	if limit > maxSupportPageSize {
		limit = maxSupportPageSize
	}

	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return nil, err
	}
	items := res.Items
	if items == nil {
		items = []model.SupportMessage{}
	}
	return &SupportPage{
		Messages: items,
		Page:     page,
		Limit:    limit,
		Total:    res.Total,
		Pages:    int((res.Total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *supportService) Get(ctx context.Context, id string) (*model.SupportMessage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	msg, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (s *supportService) UpdateStatus(ctx context.Context, id string, status model.SupportStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !msg.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, msg.Status, status)
	}

	err = s.repo.UpdateStatus(ctx, msg.ID, msg.Status, status, s.now().UTC())
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: status changed concurrently", ErrInvalidStatusTransition)
	}
	return err
}

func (s *supportService) Stats(ctx context.Context) (*model.SupportStats, error) {
	return s.repo.Stats(ctx, recentSupportMessages)
}
