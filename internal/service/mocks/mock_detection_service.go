package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
)

type MockDetectionService struct {
	mock.Mock
}

func (m *MockDetectionService) Detect(ctx context.Context, img []byte, contentType string) ([]model.Detection, error) {
	args := m.Called(ctx, img, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Detection), args.Error(1)
}
