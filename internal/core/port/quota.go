package port

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// QuotaClient fetches a user's existing post counts from the user service
type QuotaClient interface {
	GetPostCounts(ctx context.Context, userID, token string) (domain.QuotaSnapshot, error)
}

// QuotaGuard decides whether moderation is attempted for a user
type QuotaGuard interface {
	Snapshot(ctx context.Context, userID, token string) domain.QuotaSnapshot
	ShouldModerate(kind domain.MediaKind, snapshot domain.QuotaSnapshot) bool
}
