package port

import (
	"context"
	"time"
)

// CleanupService removes upload workspaces left behind by interrupted runs
type CleanupService interface {
	CleanupStaleWorkspaces(ctx context.Context, now time.Time) (int, error)
}
