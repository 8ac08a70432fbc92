package port

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// MediaService is an interface to define the upload orchestrator
type MediaService interface {
	Upload(ctx context.Context, req domain.UploadRequest) (string, error)
	Update(ctx context.Context, existingURL string, req domain.UploadRequest) (string, error)
}
