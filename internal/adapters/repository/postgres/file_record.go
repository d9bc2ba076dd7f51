package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SQLQuerier is the subset of *sql.DB used by the repositories
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
}

type sqlFileRecordRepository struct {
	db SQLQuerier
}

// NewSqlFileRecordRepository creates sqlFileRecordRepository that implements port.FileRecordRepository
func NewSqlFileRecordRepository(db SQLQuerier) port.FileRecordRepository {
	return &sqlFileRecordRepository{
		db: db,
	}
}

// dbFileRecord is the JSON document stored in file_records.document
type dbFileRecord struct {
	ID        uuid.UUID `json:"id"`
	PublicID  string    `json:"publicId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToDomain converts to domain.FileRecord
func (f *dbFileRecord) ToDomain() *domain.FileRecord {
	return &domain.FileRecord{
		ID:        f.ID,
		PublicID:  f.PublicID,
		CreatedAt: f.CreatedAt,
	}
}

// Create inserts a new document keyed by record.ID
func (s *sqlFileRecordRepository) Create(ctx context.Context, record domain.FileRecord) error {
	document, err := json.Marshal(dbFileRecord{
		ID:        record.ID,
		PublicID:  record.PublicID,
		CreatedAt: record.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("error marshalling file record: %w", err)
	}

	query := `INSERT INTO file_records (id, document) VALUES ($1, $2)`

	_, err = s.db.ExecContext(ctx, query, record.ID, string(document))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("file record %s : %w", record.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting file record: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlFileRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	query := `SELECT document FROM file_records WHERE id = $1`

	var document []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileRecordNotFound
		}
		return nil, fmt.Errorf("error querying file record: %w", err)
	}

	var dbRecord dbFileRecord
	if err := json.Unmarshal(document, &dbRecord); err != nil {
		return nil, fmt.Errorf("error unmarshalling file record %s: %w", id, err)
	}

	return dbRecord.ToDomain(), nil
}

func (s *sqlFileRecordRepository) Name() string {
	return "FileRecordStore[postgres]"
}

func (s *sqlFileRecordRepository) IsReady(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
