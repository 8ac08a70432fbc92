package port

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// DerivativeService produces resized renditions of an uploaded image
type DerivativeService interface {
	DeriveURLs(ctx context.Context, fileKey string) (*domain.DerivativeURLs, error)
}

// UpdateNotifier forwards a replaced media URL to the image service
type UpdateNotifier interface {
	NotifyUpdate(ctx context.Context, imageURL string, usage domain.UsageCategory, token string) error
}
