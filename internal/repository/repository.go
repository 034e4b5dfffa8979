// Package repository contains data access layer abstractions.
// Implementations live in subpackages (mongodb for domain documents, postgres for system logs).
package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrConflict is returned when a conditional update lost a race.
	ErrConflict = errors.New("document changed concurrently")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int64
}
