package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

func (c *cleanupService) CleanupStaleWorkspaces(ctx context.Context, now time.Time) (int, error) {
	entries, err := os.ReadDir(c.tempDir)
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-c.maxAge)
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), domain.WorkspacePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed concurrently by its own run
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(c.tempDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			c.logger.Error("failed to remove stale workspace", "dir", path, "error", err)
			continue
		}
		removed++
	}

	c.logger.Info("stale workspace cleanup completed", "removed", removed)
	return removed, nil
}
