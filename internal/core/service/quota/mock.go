package quota

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockQuotaClient is a mock implementation of port.QuotaClient
type MockQuotaClient struct {
	mock.Mock
}

// NewMockQuotaClient creates a new MockQuotaClient
func NewMockQuotaClient() *MockQuotaClient {
	return &MockQuotaClient{}
}

func (m *MockQuotaClient) GetPostCounts(ctx context.Context, userID, token string) (domain.QuotaSnapshot, error) {
	args := m.Called(ctx, userID, token)
	return args.Get(0).(domain.QuotaSnapshot), args.Error(1)
}

// MockQuotaGuard is a mock implementation of port.QuotaGuard
type MockQuotaGuard struct {
	mock.Mock
}

// NewMockQuotaGuard creates a new MockQuotaGuard
func NewMockQuotaGuard() *MockQuotaGuard {
	return &MockQuotaGuard{}
}

func (m *MockQuotaGuard) Snapshot(ctx context.Context, userID, token string) domain.QuotaSnapshot {
	args := m.Called(ctx, userID, token)
	return args.Get(0).(domain.QuotaSnapshot)
}

func (m *MockQuotaGuard) ShouldModerate(kind domain.MediaKind, snapshot domain.QuotaSnapshot) bool {
	args := m.Called(kind, snapshot)
	return args.Bool(0)
}
