package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
)

type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) Add(ctx context.Context, in service.AddMealsInput) (*model.Meal, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) ListByDay(ctx context.Context, userID, date string) ([]model.Meal, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MockMealService) UpdateEntry(ctx context.Context, userID, mealID, entryName string, upd model.MealUpdate) (*service.EntryChange, error) {
	args := m.Called(ctx, userID, mealID, entryName, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryChange), args.Error(1)
}

func (m *MockMealService) DeleteEntry(ctx context.Context, userID, mealID, entryName string) (*service.EntryChange, error) {
	args := m.Called(ctx, userID, mealID, entryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryChange), args.Error(1)
}
