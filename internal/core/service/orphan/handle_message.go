package orphan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
)

func (o *orphanAuditService) HandleMessage(ctx context.Context, data []byte) error {
	var notice domain.OrphanNotice
	if err := json.Unmarshal(data, &notice); err != nil {
		return fmt.Errorf("could not unmarshal orphan notice: %v", err)
	}
	if notice.ID == uuid.Nil || notice.PublicID == "" {
		return fmt.Errorf("orphan notice is missing id or public id")
	}

	status, err := o.audit(ctx, notice)
	if err != nil {
		return err
	}

	attrs := []any{
		"id", notice.ID.String(),
		"public_id", notice.PublicID,
		"status", string(status),
	}
	switch status {
	case domain.OrphanStatusConfirmed:
		o.logger.Warn("confirmed orphan", append(attrs, "url", notice.URL, "reason", string(notice.Reason))...)
	case domain.OrphanStatusRecordPresent:
		o.logger.Info("record present, not an orphan", attrs...)
	case domain.OrphanStatusObjectMissing:
		o.logger.Info("orphaned object already gone", attrs...)
	}
	return nil
}

func (o *orphanAuditService) audit(ctx context.Context, notice domain.OrphanNotice) (domain.OrphanStatus, error) {
	_, err := o.repo.FindByID(ctx, notice.ID)
	switch {
	case err == nil:
		return domain.OrphanStatusRecordPresent, nil
	case !errors.Is(err, domain.ErrFileRecordNotFound):
		return "", fmt.Errorf("failed to look up file record %s: %w", notice.ID, err)
	}

	exists, err := o.media.ObjectExists(ctx, notice.PublicID)
	if err != nil {
		return "", fmt.Errorf("failed to stat media object %s: %w", notice.PublicID, err)
	}
	if !exists {
		return domain.OrphanStatusObjectMissing, nil
	}
	return domain.OrphanStatusConfirmed, nil
}
