package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
)

// SupportRepository persists support tickets.
type SupportRepository interface {
	Create(ctx context.Context, m *model.SupportMessage) (*model.SupportMessage, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.SupportMessage, error)
	// List returns tickets newest first.
	List(ctx context.Context, f model.SupportFilter, pq PageQuery) (*PageResult[model.SupportMessage], error)
	// UpdateStatus moves a ticket from one status to another. It returns
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.SupportStatus, at time.Time) error
	Stats(ctx context.Context, recent int) (*model.SupportStats, error)
}
