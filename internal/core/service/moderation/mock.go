package moderation

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockLabelDetector is a mock implementation of port.LabelDetector
type MockLabelDetector struct {
	mock.Mock
}

// NewMockLabelDetector creates a new MockLabelDetector
func NewMockLabelDetector() *MockLabelDetector {
	return &MockLabelDetector{}
}

func (m *MockLabelDetector) DetectLabels(ctx context.Context, image []byte, minConfidence float32) ([]string, error) {
	args := m.Called(ctx, image, minConfidence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLabelDetector) StartJob(ctx context.Context, bucket, key string, minConfidence float32) (string, error) {
	args := m.Called(ctx, bucket, key, minConfidence)
	return args.String(0), args.Error(1)
}

func (m *MockLabelDetector) GetJob(ctx context.Context, jobID string) (*domain.ModerationJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationJob), args.Error(1)
}

// MockModerationGateway is a mock implementation of port.ModerationGateway
type MockModerationGateway struct {
	mock.Mock
}

// NewMockModerationGateway creates a new MockModerationGateway
func NewMockModerationGateway() *MockModerationGateway {
	return &MockModerationGateway{}
}

func (m *MockModerationGateway) ModerateImage(ctx context.Context, image []byte) (domain.ModerationVerdict, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(domain.ModerationVerdict), args.Error(1)
}

func (m *MockModerationGateway) ModerateVideo(ctx context.Context, key string) (domain.ModerationVerdict, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.ModerationVerdict), args.Error(1)
}
