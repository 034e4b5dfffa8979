package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
)

type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) FindByKey(ctx context.Context, key string) (*model.Food, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodRepository) Create(ctx context.Context, f *model.Food) (*model.Food, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}
