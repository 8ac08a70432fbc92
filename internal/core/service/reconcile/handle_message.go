package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

func (r *reconcileService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.MediaEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal media event: %w", err)
	}

	if event.Type != domain.EventTypeRemovalRequested {
		r.logger.Debug("ignoring media event", "type", event.Type, "id", event.ID)
		return nil
	}
	if event.StorageKey == "" {
		return fmt.Errorf("%w: removal request %s has no storage key", domain.ErrValidation, event.ID)
	}

	r.logger.Info("handling removal request", "id", event.ID, "key", event.StorageKey, "reason", event.Reason)

	latest, err := r.records.FindByStorageKey(ctx, event.StorageKey)
	switch {
	case errors.Is(err, domain.ErrUploadRecordNotFound):
		r.logger.Warn("no upload record for removal request", "key", event.StorageKey)
	case err != nil:
		return err
	case latest.Status == domain.UploadStatusPublished && latest.CreatedAt.After(event.OccurredAt):
		r.logger.Info("key republished after removal request, skipping",
			"key", event.StorageKey, "record", latest.ID, "requested_at", event.OccurredAt)
		return nil
	}

	if err := r.storage.Delete(ctx, event.StorageKey); err != nil {
		return err
	}

	err = r.records.UpdateStatusByStorageKey(ctx, event.StorageKey, domain.UploadStatusRemoved, event.Reason, event.OccurredAt)
	if errors.Is(err, domain.ErrUploadRecordNotFound) {
		r.logger.Warn("no upload record for removed object", "key", event.StorageKey)
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info("object removed", "key", event.StorageKey)
	return nil
}
