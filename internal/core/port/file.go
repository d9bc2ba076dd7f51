package port

import (
	"context"
	"io"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
)

// FileRecordRepository is an interface to define file record persistence
type FileRecordRepository interface {
	Create(ctx context.Context, record domain.FileRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error)
	ReadinessCheck
}

// MediaStore is an interface to define media host interactions
type MediaStore interface {
	Upload(ctx context.Context, publicID string, data []byte, contentType string) (string, error)
	BuildURL(publicID string) string
	ObjectExists(ctx context.Context, publicID string) (bool, error)
	ReadinessCheck
}

// ImageCompressor is an interface to define image compression
type ImageCompressor interface {
	Compress(ctx context.Context, r io.Reader) (domain.CompressedImage, error)
}

// FileService is an interface to define file service
type FileService interface {
	UploadImage(ctx context.Context, r io.Reader) (*domain.StoredImage, error)
	GetFile(ctx context.Context, id uuid.UUID) (*domain.StoredImage, error)
}
