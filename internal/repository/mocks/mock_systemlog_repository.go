package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/repository"
)

type MockSystemLogRepository struct {
	mock.Mock
}

func (m *MockSystemLogRepository) InsertBatch(ctx context.Context, logs []repository.SystemLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

func (m *MockSystemLogRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[repository.SystemLog], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[repository.SystemLog]), args.Error(1)
}

func (m *MockSystemLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
