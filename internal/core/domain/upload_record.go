package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadStatus represents the outcome recorded for an upload
type UploadStatus string

const (
	UploadStatusPublished UploadStatus = "published"
	UploadStatusRejected  UploadStatus = "rejected"
	UploadStatusFailed    UploadStatus = "failed"
	UploadStatusRemoved   UploadStatus = "removed"
)

// UploadRecord is a ledger entry describing one orchestration run
type UploadRecord struct {
	ID         uuid.UUID
	UserID     string
	Filename   string
	StorageKey string
	Kind       MediaKind
	Usage      UsageCategory
	Status     UploadStatus
	URL        string
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
