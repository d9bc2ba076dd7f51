package file

import (
	"context"
	"io"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	mock.Mock
}

// NewMockFileService creates a new MockFileService
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) UploadImage(ctx context.Context, r io.Reader) (*domain.StoredImage, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(*domain.StoredImage), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, id uuid.UUID) (*domain.StoredImage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.StoredImage), args.Error(1)
}
