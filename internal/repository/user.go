package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a user. ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	// FindByEmail expects an already lowercased email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Update sets the given fields. It reports whether anything changed,
	// and returns ErrNotFound when no user matched.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
