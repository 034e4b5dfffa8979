package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

type MockSupportRepository struct {
	mock.Mock
}

func (m *MockSupportRepository) Create(ctx context.Context, msg *model.SupportMessage) (*model.SupportMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportMessage), args.Error(1)
}

func (m *MockSupportRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.SupportMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportMessage), args.Error(1)
}

func (m *MockSupportRepository) List(ctx context.Context, f model.SupportFilter, pq repository.PageQuery) (*repository.PageResult[model.SupportMessage], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.SupportMessage]), args.Error(1)
}

func (m *MockSupportRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.SupportStatus, at time.Time) error {
	args := m.Called(ctx, id, from, to, at)
	return args.Error(0)
}

func (m *MockSupportRepository) Stats(ctx context.Context, recent int) (*model.SupportStats, error) {
	args := m.Called(ctx, recent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SupportStats), args.Error(1)
}
