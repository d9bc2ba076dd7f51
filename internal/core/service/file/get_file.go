package file

import (
	"context"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
)

// GetFile looks up the record and rebuilds its URL from the public id
func (f *fileService) GetFile(ctx context.Context, id uuid.UUID) (*domain.StoredImage, error) {
	recordCtx, cancel := withTimeout(ctx, f.fileUploadCfg.MetadataTimeout)
	defer cancel()

	record, err := f.repo.FindByID(recordCtx, id)
	if err != nil {
		return nil, err
	}

	return &domain.StoredImage{
		ID:       record.ID,
		PublicID: record.PublicID,
		URL:      f.media.BuildURL(record.PublicID),
	}, nil
}
