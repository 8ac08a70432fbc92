package moderation

import (
	"context"
	"fmt"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

func (g *moderationGateway) ModerateImage(ctx context.Context, image []byte) (domain.ModerationVerdict, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.ModerationVerdict{}, fmt.Errorf("%w: %w", domain.ErrModeration, err)
	}

	labels, err := g.detector.DetectLabels(ctx, image, g.minConfidence)
	if err != nil {
		return domain.ModerationVerdict{}, fmt.Errorf("%w: %w", domain.ErrModeration, err)
	}

	flagged, inappropriate := g.verdict(labels)
	if inappropriate {
		g.logger.Warn("image flagged by moderation", "labels", flagged)
	}

	return domain.ModerationVerdict{Inappropriate: inappropriate, Labels: flagged}, nil
}
