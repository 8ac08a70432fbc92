package media

import (
	"context"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/google/uuid"
)

// finish records the outcome of a run in the ledger and publishes its events.
// Both are best-effort and never change the result returned to the caller.
func (s *mediaService) finish(ctx context.Context, req domain.UploadRequest, artifact *domain.ProcessedArtifact, key, url string, runErr error) {
	ctx = context.WithoutCancel(ctx)
	if key == "" {
		key = domain.StorageKey(artifact.FinalFilename)
	}

	record := domain.UploadRecord{
		ID:         uuid.New(),
		UserID:     req.UserID,
		Filename:   artifact.FinalFilename,
		StorageKey: key,
		Kind:       artifact.Kind,
		Usage:      req.Usage,
		URL:        url,
		CreatedAt:  time.Now().UTC(),
	}

	var events []domain.MediaEvent
	switch {
	case runErr == nil:
		record.Status = domain.UploadStatusPublished
		e := domain.NewMediaEvent(domain.EventTypePublished, req.UserID, key, artifact.Kind)
		e.URL = url
		events = append(events, e)
	case artifact.Inappropriate:
		record.Status = domain.UploadStatusRejected
		record.Reason = runErr.Error()
		e := domain.NewMediaEvent(domain.EventTypeRejected, req.UserID, key, artifact.Kind)
		e.Reason = runErr.Error()
		events = append(events, e)
	default:
		record.Status = domain.UploadStatusFailed
		record.Reason = runErr.Error()
	}

	if err := s.records.Create(ctx, record); err != nil {
		s.logger.Warn("failed to record upload", "key", key, "status", record.Status, "error", err)
	}

	// stamped after the ledger row so the reconciler treats this run's row as older than the request
	if artifact.RemovalReason != "" {
		e := domain.NewMediaEvent(domain.EventTypeRemovalRequested, "", key, artifact.Kind)
		e.Reason = artifact.RemovalReason
		events = append(events, e)
	}

	for _, event := range events {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish media event", "key", key, "type", event.Type, "error", err)
		}
	}
}
