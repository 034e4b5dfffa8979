package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/service"
)

type MockAdviceService struct {
	mock.Mock
}

func (m *MockAdviceService) Generate(ctx context.Context, userID, date string) (*service.AdviceResult, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdviceResult), args.Error(1)
}
