package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) Upload(ctx context.Context, publicID string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, publicID, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) BuildURL(publicID string) string {
	args := m.Called(publicID)
	return args.String(0)
}

func (m *MockStorage) ObjectExists(ctx context.Context, publicID string) (bool, error) {
	args := m.Called(ctx, publicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) Name() string {
	return "MockStorage"
}

func (m *MockStorage) IsReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
