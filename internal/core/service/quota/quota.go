package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"
)

type quotaGuard struct {
	client         port.QuotaClient
	timeout        time.Duration
	imageThreshold int64
	videoThreshold int64
	logger         *slog.Logger
}

// NewQuotaGuard creates a guard that gates moderation on a user's post counts
func NewQuotaGuard(client port.QuotaClient, quotaCfg config.QuotaConfig, moderationCfg config.ModerationConfig, logger *slog.Logger) port.QuotaGuard {
	return &quotaGuard{
		client:         client,
		timeout:        quotaCfg.Timeout,
		imageThreshold: moderationCfg.ImageThreshold,
		videoThreshold: moderationCfg.VideoThreshold,
		logger:         logger,
	}
}

// Snapshot never fails: any collaborator error yields a zero snapshot so
// moderation stays enabled for the run.
func (q *quotaGuard) Snapshot(ctx context.Context, userID, token string) domain.QuotaSnapshot {
	if userID == "" || token == "" {
		q.logger.Warn("missing user id or token, using default post counts")
		return domain.QuotaSnapshot{}
	}

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	snapshot, err := q.client.GetPostCounts(ctx, userID, token)
	if err != nil {
		q.logger.Warn("failed to fetch post counts, using defaults",
			"user_id", userID,
			"error", fmt.Errorf("%w: %w", domain.ErrExternalServiceUnavailable, err))
		return domain.QuotaSnapshot{}
	}

	q.logger.Info("post counts retrieved", "user_id", userID, "images", snapshot.ImageCount, "videos", snapshot.VideoCount)
	return snapshot
}

// ShouldModerate reports whether the user's count for kind is below its threshold
func (q *quotaGuard) ShouldModerate(kind domain.MediaKind, snapshot domain.QuotaSnapshot) bool {
	switch kind {
	case domain.MediaKindImage:
		return snapshot.ImageCount < q.imageThreshold
	case domain.MediaKindVideo:
		return snapshot.VideoCount < q.videoThreshold
	case domain.MediaKindOther:
		return false
	default:
		return false
	}
}
