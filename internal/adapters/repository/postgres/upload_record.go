package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlUploadRecordRepository struct {
	db SQLQuerier
}

// NewSQLUploadRecordRepository creates a repository storing the upload ledger
func NewSQLUploadRecordRepository(db SQLQuerier) port.UploadRecordRepository {
	return &sqlUploadRecordRepository{db: db}
}

// Create inserts a ledger row. A zero CreatedAt is stamped with the current time.
func (s *sqlUploadRecordRepository) Create(ctx context.Context, record domain.UploadRecord) error {
	query := `
		INSERT INTO media_uploads (
			id, user_id, filename, storage_key, media_kind, usage, status, url, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.Filename,
		record.StorageKey,
		record.Kind,
		record.Usage,
		record.Status,
		record.URL,
		record.Reason,
		createdAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("upload %s: %w", record.ID, domain.ErrUploadRecordExists)
		}
		return err
	}
	return nil
}

// FindByStorageKey returns the most recent ledger row for key
func (s *sqlUploadRecordRepository) FindByStorageKey(ctx context.Context, key string) (*domain.UploadRecord, error) {
	query := `
		SELECT id, user_id, filename, storage_key, media_kind, usage, status, url, reason, created_at, updated_at
		FROM media_uploads
		WHERE storage_key = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var row dbUploadRecord
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&row.ID,
		&row.UserID,
		&row.Filename,
		&row.StorageKey,
		&row.Kind,
		&row.Usage,
		&row.Status,
		&row.URL,
		&row.Reason,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUploadRecordNotFound
		}
		return nil, err
	}

	return row.ToDomain(), nil
}

// UpdateStatusByStorageKey updates the status and reason of the rows for key
// created at or before the given time. Later uploads reusing the key are left untouched.
func (s *sqlUploadRecordRepository) UpdateStatusByStorageKey(ctx context.Context, key string, status domain.UploadStatus, reason string, before time.Time) error {
	query := `
		UPDATE media_uploads
		SET status = $1, reason = $2, updated_at = now()
		WHERE storage_key = $3 AND created_at <= $4`

	result, err := s.db.ExecContext(ctx, query, status, reason, key, before)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrUploadRecordNotFound
	}

	return nil
}

// dbUploadRecord represents a media_uploads row
type dbUploadRecord struct {
	ID         uuid.UUID `db:"id"`
	UserID     string    `db:"user_id"`
	Filename   string    `db:"filename"`
	StorageKey string    `db:"storage_key"`
	Kind       string    `db:"media_kind"`
	Usage      string    `db:"usage"`
	Status     string    `db:"status"`
	URL        string    `db:"url"`
	Reason     string    `db:"reason"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ToDomain converts to domain.UploadRecord
func (r *dbUploadRecord) ToDomain() *domain.UploadRecord {
	return &domain.UploadRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		Filename:   r.Filename,
		StorageKey: r.StorageKey,
		Kind:       domain.MediaKind(r.Kind),
		Usage:      domain.UsageCategory(r.Usage),
		Status:     domain.UploadStatus(r.Status),
		URL:        r.URL,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
