package repository

import (
	"context"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockUploadRecordRepository is a mock implementation of port.UploadRecordRepository
type MockUploadRecordRepository struct {
	mock.Mock
}

// NewMockUploadRecordRepository creates a new MockUploadRecordRepository
func NewMockUploadRecordRepository() *MockUploadRecordRepository {
	return &MockUploadRecordRepository{}
}

func (m *MockUploadRecordRepository) Create(ctx context.Context, record domain.UploadRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUploadRecordRepository) FindByStorageKey(ctx context.Context, key string) (*domain.UploadRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadRecord), args.Error(1)
}

func (m *MockUploadRecordRepository) UpdateStatusByStorageKey(ctx context.Context, key string, status domain.UploadStatus, reason string, before time.Time) error {
	args := m.Called(ctx, key, status, reason, before)
	return args.Error(0)
}
