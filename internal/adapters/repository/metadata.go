package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rankshow/GetBackFiles/internal/adapters/repository/dynamodb"
	"github.com/Rankshow/GetBackFiles/internal/adapters/repository/postgres"
	"github.com/Rankshow/GetBackFiles/internal/config"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
)

// NewFileRecordRepository opens the metadata store selected by METADATA_BACKEND.
// The returned close func releases its connections.
func NewFileRecordRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.FileRecordRepository, func() error, error) {
	switch cfg.Metadata.Backend {
	case config.MetadataBackendDynamoDB:
		client, err := dynamodb.NewClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, err
		}
		if err := dynamodb.EnsureTable(ctx, client, cfg.DynamoDB.Table); err != nil {
			return nil, nil, err
		}
		logger.Info("dynamodb metadata store ready", "table", cfg.DynamoDB.Table, "region", cfg.DynamoDB.Region)
		return dynamodb.NewFileRecordRepository(client, cfg.DynamoDB.Table), func() error { return nil }, nil

	case config.MetadataBackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("db connection established", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return postgres.NewSqlFileRecordRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown metadata backend %q", cfg.Metadata.Backend)
	}
}
