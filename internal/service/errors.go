package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID    = errors.New("invalid id format")
	ErrReaderNil    = errors.New("reader is nil")
	ErrInvalidDate  = errors.New("invalid date format")
	ErrInvalidImage = errors.New("invalid image")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")

	ErrMealNotFound  = errors.New("meal not found or not authorized")
	ErrEntryNotFound = errors.New("meal entry not found")

	ErrFoodNameRequired = errors.New("food name is required")
	ErrImageNotFound    = errors.New("image not found")

	ErrTicketNotFound          = errors.New("support message not found")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")

	// ErrUpstream wraps failures of the LLM, detectors and other third-party APIs.
	ErrUpstream = errors.New("upstream service failed")
)

func parseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
