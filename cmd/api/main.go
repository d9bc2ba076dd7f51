package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Rankshow/GetBackFiles/internal/adapters/compressor/imaging"
	"github.com/Rankshow/GetBackFiles/internal/adapters/eventbroker/nats"
	"github.com/Rankshow/GetBackFiles/internal/adapters/handlers/http/chi"
	file2 "github.com/Rankshow/GetBackFiles/internal/adapters/handlers/http/chi/v1/file"
	"github.com/Rankshow/GetBackFiles/internal/adapters/repository"
	"github.com/Rankshow/GetBackFiles/internal/adapters/storage/minio"
	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/Rankshow/GetBackFiles/internal/core/service/file"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	//metadata store
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

	//media store
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//orphan notices are optional
	var orphans port.OrphanPublisher
	if cfg.NATS.Enabled() {
		publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init NATS publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close NATS publisher", "error", err)
			}
		}()
		orphans = publisher
		logger.Info("NATS publisher initialized", "subject", cfg.NATS.Subject)
	}

	compressor := imaging.NewCompressor(cfg.Image)
	fileService := file.NewFileService(fileRecordRepo, minioAdapter, compressor, orphans, cfg.Upload, logger)

	//http
	fileHandler := file2.NewFileHandlerV1(fileService, cfg.Upload.MaxSize, logger)

	router := chi.NewRouter(logger, fileHandler, cfg.Env.Env, cfg.Server.RequestTimeout, minioAdapter, fileRecordRepo)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}
