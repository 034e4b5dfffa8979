package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
)

// MealRepository persists per-day meal documents.
type MealRepository interface {
	// AppendEntries atomically creates the (userID, day) document if needed,
	// appends the entries and increments the totals by inc.
	AppendEntries(ctx context.Context, userID primitive.ObjectID, day time.Time, entries []model.MealEntry, inc model.Totals) (*model.Meal, error)
	// ListByUser returns documents with from <= date < to, oldest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]model.Meal, error)
	// FindOwned returns the document only if it belongs to userID.
	FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Meal, error)
	// ReplaceEntries overwrites the entry list and totals.
	ReplaceEntries(ctx context.Context, id primitive.ObjectID, entries []model.MealEntry, totals model.Totals) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
