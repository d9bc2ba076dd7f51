package port

import (
	"context"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
)

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}

// OrphanPublisher reports media objects left without a metadata record
type OrphanPublisher interface {
	PublishOrphan(ctx context.Context, notice domain.OrphanNotice) error
}
