package repository_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Rankshow/GetBackFiles/internal/adapters/repository"
	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewFileRecordRepository_UnknownBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Metadata: config.MetadataConfig{Backend: "cosmos"}}

	repo, closeFn, err := repository.NewFileRecordRepository(context.Background(), cfg, logger)

	require.Error(t, err)
	require.Nil(t, repo)
	require.Nil(t, closeFn)
}
