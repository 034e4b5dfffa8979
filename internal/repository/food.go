package repository

import (
	"context"

	"nutritrack/internal/model"
)

// FoodRepository caches nutrition lookups by normalized name.
type FoodRepository interface {
	FindByKey(ctx context.Context, key string) (*model.Food, error)
	// Create returns ErrDuplicate when another request cached the key first.
	Create(ctx context.Context, f *model.Food) (*model.Food, error)
}
