package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
)

type MockSupportService struct {
	mock.Mock
}

func (m *MockSupportService) Submit(ctx context.Context, in service.SubmitInput) (*model.SupportMessage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportMessage), args.Error(1)
}

func (m *MockSupportService) List(ctx context.Context, f model.SupportFilter, page, limit int) (*service.SupportPage, error) {
	args := m.Called(ctx, f, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SupportPage), args.Error(1)
}

func (m *MockSupportService) Get(ctx context.Context, id string) (*model.SupportMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportMessage), args.Error(1)
}

func (m *MockSupportService) UpdateStatus(ctx context.Context, id string, status model.SupportStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSupportService) Stats(ctx context.Context) (*model.SupportStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportStats), args.Error(1)
}
