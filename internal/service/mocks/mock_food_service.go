package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
)

type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) Lookup(ctx context.Context, name string) (*model.Food, bool, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Food), args.Bool(1), args.Error(2)
}
