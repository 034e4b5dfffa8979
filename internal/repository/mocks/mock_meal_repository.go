package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
)

type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) AppendEntries(ctx context.Context, userID primitive.ObjectID, day time.Time, entries []model.MealEntry, inc model.Totals) (*model.Meal, error) {
	args := m.Called(ctx, userID, day, entries, inc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]model.Meal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MockMealRepository) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Meal, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealRepository) ReplaceEntries(ctx context.Context, id primitive.ObjectID, entries []model.MealEntry, totals model.Totals) error {
	args := m.Called(ctx, id, entries, totals)
	return args.Error(0)
}

func (m *MockMealRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
