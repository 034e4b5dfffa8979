package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/service"
)

type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) ForUser(ctx context.Context, userID, rangeName string) (*service.Statistics, error) {
	args := m.Called(ctx, userID, rangeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Statistics), args.Error(1)
}
