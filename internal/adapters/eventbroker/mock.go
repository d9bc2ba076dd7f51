package eventbroker

import (
	"context"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrphanPublisher struct {
	mock.Mock
}

func NewMockOrphanPublisher() *MockOrphanPublisher {
	return &MockOrphanPublisher{}
}

func (m *MockOrphanPublisher) PublishOrphan(ctx context.Context, notice domain.OrphanNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
