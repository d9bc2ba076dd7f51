package nats_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	nats2 "github.com/Rankshow/GetBackFiles/internal/adapters/eventbroker/nats"
	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type recordingHandler struct {
	mu       sync.Mutex
	messages [][]byte
	received chan struct{}
	failures int
}

func (h *recordingHandler) HandleMessage(ctx context.Context, data []byte) error {
	h.mu.Lock()
	h.messages = append(h.messages, data)
	fail := h.failures > 0
	if fail {
		h.failures--
	}
	h.mu.Unlock()

	h.received <- struct{}{}
	if fail {
		return errors.New("temporary failure")
	}
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

func setupNATSContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func newConfig(url, suffix string) config.NATSConfig {
	return config.NATSConfig{
		URL:          url,
		StreamName:   "ORPHANS_" + suffix,
		Subject:      "media.orphaned." + suffix,
		ConsumerName: "orphan-audit-" + suffix,
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("message not received")
	}
}

func TestPublisherConsumer(t *testing.T) {
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("published notice reaches the consumer", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cfg := newConfig(natsURL, "roundtrip")

		publisher, err := nats2.NewNATSPublisher(ctx, cfg, logger)
		require.NoError(t, err)
		defer publisher.Close()

		consumer, err := nats2.NewNATSConsumer(ctx, cfg, logger)
		require.NoError(t, err)
		defer consumer.Close()

		handler := &recordingHandler{received: make(chan struct{}, 4)}
		require.NoError(t, consumer.Subscribe(ctx, handler))

		notice := domain.OrphanNotice{
			ID:         uuid.New(),
			PublicID:   "abc",
			URL:        "http://media/abc",
			Reason:     domain.OrphanReasonMetadataWriteFailed,
			OccurredAt: time.Now().UTC(),
		}

		// Act
		err = publisher.PublishOrphan(ctx, notice)

		// Assert
		require.NoError(t, err)
		waitFor(t, handler.received)

		var received domain.OrphanNotice
		require.NoError(t, json.Unmarshal(handler.messages[0], &received))
		assert.Equal(t, notice.ID, received.ID)
		assert.Equal(t, notice.PublicID, received.PublicID)
		assert.Equal(t, notice.Reason, received.Reason)
	})

	t.Run("same notice published twice is delivered once", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cfg := newConfig(natsURL, "dedup")

		publisher, err := nats2.NewNATSPublisher(ctx, cfg, logger)
		require.NoError(t, err)
		defer publisher.Close()

		consumer, err := nats2.NewNATSConsumer(ctx, cfg, logger)
		require.NoError(t, err)
		defer consumer.Close()

		handler := &recordingHandler{received: make(chan struct{}, 4)}
		require.NoError(t, consumer.Subscribe(ctx, handler))

		notice := domain.OrphanNotice{ID: uuid.New(), PublicID: "dup", OccurredAt: time.Now()}

		// Act
		require.NoError(t, publisher.PublishOrphan(ctx, notice))
		require.NoError(t, publisher.PublishOrphan(ctx, notice))

		// Assert
		waitFor(t, handler.received)
		time.Sleep(500 * time.Millisecond)
		assert.Equal(t, 1, handler.count())
	})

	t.Run("handler error is redelivered", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cfg := newConfig(natsURL, "redeliver")

		publisher, err := nats2.NewNATSPublisher(ctx, cfg, logger)
		require.NoError(t, err)
		defer publisher.Close()

		consumer, err := nats2.NewNATSConsumer(ctx, cfg, logger)
		require.NoError(t, err)
		defer consumer.Close()

		handler := &recordingHandler{received: make(chan struct{}, 4), failures: 1}
		require.NoError(t, consumer.Subscribe(ctx, handler))

		// Act
		require.NoError(t, publisher.PublishOrphan(ctx, domain.OrphanNotice{ID: uuid.New(), OccurredAt: time.Now()}))

		// Assert
		waitFor(t, handler.received)
		waitFor(t, handler.received)
		assert.Equal(t, 2, handler.count())
	})
}

func TestNewNATSPublisher_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := nats2.NewNATSPublisher(context.Background(), newConfig("nats://127.0.0.1:1", "invalid"), logger)

	require.Error(t, err)
}
