package orphan

import (
	"log/slog"

	"github.com/Rankshow/GetBackFiles/internal/core/port"
)

type orphanAuditService struct {
	repo   port.FileRecordRepository
	media  port.MediaStore
	logger *slog.Logger
}

// NewOrphanAuditService creates the handler for orphan notices. It only reports,
// deleting confirmed orphans is left to an operator.
func NewOrphanAuditService(repo port.FileRecordRepository, media port.MediaStore, logger *slog.Logger) port.MessageService {
	return &orphanAuditService{
		repo:   repo,
		media:  media,
		logger: logger,
	}
}
