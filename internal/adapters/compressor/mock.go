package compressor

import (
	"context"
	"io"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCompressor struct {
	mock.Mock
}

func NewMockCompressor() *MockCompressor {
	return &MockCompressor{}
}

func (m *MockCompressor) Compress(ctx context.Context, r io.Reader) (domain.CompressedImage, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.CompressedImage), args.Error(1)
}
