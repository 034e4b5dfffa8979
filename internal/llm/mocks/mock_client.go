package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/llm"
)

// MockClient fills CompleteJSON's out through a Run hook when a test needs an answer.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockClient) CompleteJSON(ctx context.Context, req llm.Request, out any) error {
	args := m.Called(ctx, req, out)
	return args.Error(0)
}
