package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/cenkalti/backoff/v4"
)

// errJobInProgress marks a poll attempt that should be retried
var errJobInProgress = errors.New("moderation job in progress")

func (g *moderationGateway) ModerateVideo(ctx context.Context, key string) (domain.ModerationVerdict, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.ModerationVerdict{}, fmt.Errorf("%w: %w", domain.ErrModeration, err)
	}

	jobID, err := g.detector.StartJob(ctx, g.bucket, key, g.minConfidence)
	if err != nil {
		return domain.ModerationVerdict{}, fmt.Errorf("%w: %w", domain.ErrModeration, err)
	}
	g.logger.Info("video moderation job started", "job_id", jobID, "key", key)

	job, err := g.poll(ctx, jobID)
	if err != nil {
		return domain.ModerationVerdict{}, err
	}

	if job.Status != domain.ModerationJobSucceeded {
		return domain.ModerationVerdict{}, fmt.Errorf("%w: job %s finished with status %s: %s",
			domain.ErrModeration, jobID, job.Status, job.Message)
	}

	flagged, inappropriate := g.verdict(job.Labels)
	if inappropriate {
		g.logger.Warn("video flagged by moderation", "job_id", jobID, "key", key, "labels", flagged)
	}

	return domain.ModerationVerdict{Inappropriate: inappropriate, Labels: flagged}, nil
}

// poll fetches the job status at a fixed interval, starting one interval after
// submission, until it leaves IN_PROGRESS or the max poll duration elapses.
func (g *moderationGateway) poll(ctx context.Context, jobID string) (*domain.ModerationJob, error) {
	wait := time.NewTimer(g.pollInterval)
	defer wait.Stop()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrModeration, ctx.Err())
	case <-wait.C:
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.pollInterval
	b.MaxInterval = g.pollInterval
	b.Multiplier = 1
	b.RandomizationFactor = 0
	b.MaxElapsedTime = g.maxPollDuration
	b.Reset()

	var job *domain.ModerationJob
	operation := func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		current, err := g.detector.GetJob(ctx, jobID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if current.Status == domain.ModerationJobInProgress {
			return errJobInProgress
		}

		job = current
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	switch {
	case err == nil:
		return job, nil
	case errors.Is(err, errJobInProgress):
		return nil, fmt.Errorf("%w: %w: job %s still in progress after %s",
			domain.ErrModeration, domain.ErrModerationTimeout, jobID, g.maxPollDuration)
	default:
		return nil, fmt.Errorf("%w: %w", domain.ErrModeration, err)
	}
}
