package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
)

// ImageRepository stores metadata of uploaded images.
// No business logic here, strictly persistence operations.
type ImageRepository interface {
	// Create inserts a new image record and returns it with its ID set.
	Create(ctx context.Context, img *model.Image) (*model.Image, error)

	// FindByID returns an image by its ID.
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Image, error)

	// List returns a page of images, optionally restricted to one user, newest first.
	List(ctx context.Context, userID *primitive.ObjectID, pq PageQuery) (*PageResult[model.Image], error)

	// Delete removes an image record. It returns nil if the record was deleted or did not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
