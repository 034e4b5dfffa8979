package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
)

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, userID string) (*model.Image, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageService) List(ctx context.Context, userID string, limit, offset int) (*service.ImageListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImageListResult), args.Error(1)
}

func (m *MockImageService) Get(ctx context.Context, id string) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Image), args.Error(2)
}

func (m *MockImageService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
