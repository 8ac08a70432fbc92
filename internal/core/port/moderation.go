package port

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// LabelDetector is an interface to define label-detection service interactions
type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte, minConfidence float32) ([]string, error)
	StartJob(ctx context.Context, bucket, key string, minConfidence float32) (string, error)
	GetJob(ctx context.Context, jobID string) (*domain.ModerationJob, error)
}

// ModerationGateway decides whether media content may be published
type ModerationGateway interface {
	ModerateImage(ctx context.Context, image []byte) (domain.ModerationVerdict, error)
	ModerateVideo(ctx context.Context, key string) (domain.ModerationVerdict, error)
}
