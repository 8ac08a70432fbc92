package cleanup

import (
	"log/slog"
	"os"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"
)

type cleanupService struct {
	tempDir string
	maxAge  time.Duration
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service sweeping tempDir, or the OS
// temp directory when empty
func NewCleanupService(tempDir string, maxAge time.Duration, logger *slog.Logger) port.CleanupService {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &cleanupService{
		tempDir: tempDir,
		maxAge:  maxAge,
		logger:  logger,
	}
}
