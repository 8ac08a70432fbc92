package port

import (
	"context"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// UploadRecordRepository is an interface to define upload ledger interactions
type UploadRecordRepository interface {
	Create(ctx context.Context, record domain.UploadRecord) error
	FindByStorageKey(ctx context.Context, storageKey string) (*domain.UploadRecord, error)
	UpdateStatusByStorageKey(ctx context.Context, storageKey string, status domain.UploadStatus, reason string, before time.Time) error
}
