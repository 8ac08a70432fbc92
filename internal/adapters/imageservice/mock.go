package imageservice

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockDerivativeService is a mock implementation of port.DerivativeService
type MockDerivativeService struct {
	mock.Mock
}

// NewMockDerivativeService creates a new MockDerivativeService
func NewMockDerivativeService() *MockDerivativeService {
	return &MockDerivativeService{}
}

func (m *MockDerivativeService) DeriveURLs(ctx context.Context, fileKey string) (*domain.DerivativeURLs, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DerivativeURLs), args.Error(1)
}

// MockUpdateNotifier is a mock implementation of port.UpdateNotifier
type MockUpdateNotifier struct {
	mock.Mock
}

// NewMockUpdateNotifier creates a new MockUpdateNotifier
func NewMockUpdateNotifier() *MockUpdateNotifier {
	return &MockUpdateNotifier{}
}

func (m *MockUpdateNotifier) NotifyUpdate(ctx context.Context, imageURL string, usage domain.UsageCategory, token string) error {
	args := m.Called(ctx, imageURL, usage, token)
	return args.Error(0)
}
