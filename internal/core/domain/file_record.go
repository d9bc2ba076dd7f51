package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord is the metadata stored for an uploaded image.
// The image URL is not stored; it is rebuilt from PublicID on every read.
type FileRecord struct {
	ID        uuid.UUID
	PublicID  string
	CreatedAt time.Time
}

// StoredImage is a FileRecord resolved against the media store
type StoredImage struct {
	ID       uuid.UUID
	PublicID string
	URL      string
}

// CompressedImage is the output of the image compressor
type CompressedImage struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}
