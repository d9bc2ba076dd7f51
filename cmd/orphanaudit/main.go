package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rankshow/GetBackFiles/internal/adapters/eventbroker/nats"
	"github.com/Rankshow/GetBackFiles/internal/adapters/repository"
	"github.com/Rankshow/GetBackFiles/internal/adapters/storage/minio"
	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/service/orphan"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if !cfg.NATS.Enabled() {
		logger.Error("NATS_URL is required for the orphan audit")
		os.Exit(1)
	}

	fileRecordRepo, closeRepo, err := repository.NewFileRecordRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init metadata store", "backend", cfg.Metadata.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error("failed to close metadata store", "error", err)
		}
	}()

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}
	logger.Info("minio adapter initialized")

	auditService := orphan.NewOrphanAuditService(fileRecordRepo, minioAdapter, logger)

	// Initialize NATS consumer
	natsConsumer, err := nats.NewNATSConsumer(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS consumer initialized")

	if err := natsConsumer.Subscribe(ctx, auditService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		_ = natsConsumer.Close()
		os.Exit(1)
	}
	logger.Info("NATS subscription active", "subject", cfg.NATS.Subject, "consumer", cfg.NATS.ConsumerName)

	// Wait for termination signal
	<-ctx.Done()
	logger.Info("gracefully shutting down orphan audit")

	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	logger.Info("orphan audit shutdown complete")
}
