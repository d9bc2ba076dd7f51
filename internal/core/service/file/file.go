package file

import (
	"context"
	"log/slog"
	"path"
	"time"

	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeStored        = "stored"
	outcomeInvalidImage  = "invalid_image"
	outcomeMediaFailed   = "media_failed"
	outcomeRecordFailed  = "record_failed"
	outcomeCompressError = "compress_failed"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "imagevault_uploads_total",
		Help: "Image uploads by outcome",
	}, []string{"outcome"})

	orphanedMediaTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "imagevault_orphaned_media_total",
		Help: "Media objects uploaded without a matching file record",
	})

	compressedBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "imagevault_compressed_image_bytes",
		Help:    "Size of compressed images sent to the media store",
		Buckets: prometheus.ExponentialBuckets(16*1024, 2, 8),
	})
)

type fileService struct {
	repo          port.FileRecordRepository
	media         port.MediaStore
	compressor    port.ImageCompressor
	orphans       port.OrphanPublisher
	fileUploadCfg config.FileUploadConfig
	logger        *slog.Logger
}

// NewFileService creates a new file service. orphans may be nil, in which case
// orphaned media objects are only logged.
func NewFileService(
	repo port.FileRecordRepository,
	media port.MediaStore,
	compressor port.ImageCompressor,
	orphans port.OrphanPublisher,
	cfg config.FileUploadConfig,
	logger *slog.Logger,
) port.FileService {
	return &fileService{
		repo:          repo,
		media:         media,
		compressor:    compressor,
		orphans:       orphans,
		fileUploadCfg: cfg,
		logger:        logger,
	}
}

func (f *fileService) publicID(id uuid.UUID) string {
	if f.fileUploadCfg.Folder == "" {
		return id.String()
	}
	return path.Join(f.fileUploadCfg.Folder, id.String())
}

// withTimeout bounds a remote call. A zero duration leaves ctx untouched.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
