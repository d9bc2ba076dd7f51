package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrphanReason describes why a media object was left without a metadata record
type OrphanReason string

const (
	OrphanReasonMetadataWriteFailed OrphanReason = "metadata_write_failed"
)

// OrphanNotice is published when an object reached the media store but its record
// could not be written. Deletion of the object happens out-of-band.
type OrphanNotice struct {
	ID         uuid.UUID    `json:"id"`
	PublicID   string       `json:"public_id"`
	URL        string       `json:"url"`
	Reason     OrphanReason `json:"reason"`
	Error      string       `json:"error,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// OrphanStatus is the outcome of auditing an OrphanNotice
type OrphanStatus string

const (
	OrphanStatusConfirmed     OrphanStatus = "confirmed"
	OrphanStatusRecordPresent OrphanStatus = "record_present"
	OrphanStatusObjectMissing OrphanStatus = "object_missing"
)
