package media

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockMediaService is a mock implementation of port.MediaService
type MockMediaService struct {
	mock.Mock
}

// NewMockMediaService creates a new MockMediaService
func NewMockMediaService() *MockMediaService {
	return &MockMediaService{}
}

func (m *MockMediaService) Upload(ctx context.Context, req domain.UploadRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockMediaService) Update(ctx context.Context, existingURL string, req domain.UploadRequest) (string, error) {
	args := m.Called(ctx, existingURL, req)
	return args.String(0), args.Error(1)
}
