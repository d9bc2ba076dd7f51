package repository

import (
	"context"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileRecordRepository struct {
	mock.Mock
}

func NewMockFileRecordRepository() *MockFileRecordRepository {
	return &MockFileRecordRepository{}
}

func (m *MockFileRecordRepository) Create(ctx context.Context, record domain.FileRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFileRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileRecordRepository) Name() string {
	return "MockFileRecordRepository"
}

func (m *MockFileRecordRepository) IsReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
