package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
)

const orphanPublishTimeout = 5 * time.Second

// UploadImage compresses r, stores it in the media store under a fresh id and
// records {id, publicId}. The two writes are not transactional: when the record
// cannot be written the uploaded object is reported as orphaned.
func (f *fileService) UploadImage(ctx context.Context, r io.Reader) (*domain.StoredImage, error) {
	if r == nil {
		return nil, domain.ErrEmptyFile
	}

	compressed, err := f.compressor.Compress(ctx, r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImage) {
			uploadsTotal.WithLabelValues(outcomeInvalidImage).Inc()
			return nil, err
		}
		uploadsTotal.WithLabelValues(outcomeCompressError).Inc()
		return nil, fmt.Errorf("failed to compress image: %w", err)
	}
	compressedBytes.Observe(float64(len(compressed.Data)))

	id := uuid.New()

	mediaCtx, cancelMedia := withTimeout(ctx, f.fileUploadCfg.MediaTimeout)
	publicID, err := f.media.Upload(mediaCtx, f.publicID(id), compressed.Data, compressed.ContentType)
	cancelMedia()
	if err != nil {
		uploadsTotal.WithLabelValues(outcomeMediaFailed).Inc()
		return nil, fmt.Errorf("failed to upload image to media store: %w", err)
	}

	imageURL := f.media.BuildURL(publicID)
	record := domain.FileRecord{
		ID:        id,
		PublicID:  publicID,
		CreatedAt: time.Now().UTC(),
	}

	recordCtx, cancelRecord := withTimeout(ctx, f.fileUploadCfg.MetadataTimeout)
	err = f.repo.Create(recordCtx, record)
	cancelRecord()
	if err != nil {
		uploadsTotal.WithLabelValues(outcomeRecordFailed).Inc()
		f.reportOrphan(ctx, record, imageURL, err)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	uploadsTotal.WithLabelValues(outcomeStored).Inc()
	f.logger.Info("image stored",
		"id", id.String(),
		"public_id", publicID,
		"width", compressed.Width,
		"height", compressed.Height,
		"size", len(compressed.Data))

	return &domain.StoredImage{
		ID:       id,
		PublicID: publicID,
		URL:      imageURL,
	}, nil
}

func (f *fileService) reportOrphan(ctx context.Context, record domain.FileRecord, imageURL string, cause error) {
	orphanedMediaTotal.Inc()
	f.logger.Error("orphaned media object",
		"id", record.ID.String(),
		"public_id", record.PublicID,
		"url", imageURL,
		"error", cause)

	if f.orphans == nil {
		return
	}

	notice := domain.OrphanNotice{
		ID:         record.ID,
		PublicID:   record.PublicID,
		URL:        imageURL,
		Reason:     domain.OrphanReasonMetadataWriteFailed,
		Error:      cause.Error(),
		OccurredAt: record.CreatedAt,
	}

	// the request context may already be cancelled, which is often why the write failed
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), orphanPublishTimeout)
	defer cancel()
	if err := f.orphans.PublishOrphan(publishCtx, notice); err != nil {
		f.logger.Error("failed to publish orphan notice", "id", record.ID.String(), "error", err)
	}
}
