package transcoder

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTranscoder is a mock implementation of port.Transcoder
type MockTranscoder struct {
	mock.Mock
}

// NewMockTranscoder creates a new MockTranscoder
func NewMockTranscoder() *MockTranscoder {
	return &MockTranscoder{}
}

func (m *MockTranscoder) Compress(ctx context.Context, inputPath, outputPath string) error {
	args := m.Called(ctx, inputPath, outputPath)
	return args.Error(0)
}
