// Package mongodb implements the repository interfaces on MongoDB collections.
package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"nutritrack/internal/repository"
)

// Collection names.
const (
	UsersCollection   = "users"
	MealsCollection   = "meals"
	FoodsCollection   = "foods"
	SupportCollection = "support_messages"
	ImagesCollection  = "images"
)

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
