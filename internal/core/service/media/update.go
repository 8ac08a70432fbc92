package media

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// Update replaces the object behind existingURL with a new upload.
// The old object is deleted best-effort once the request is known to be valid.
func (s *mediaService) Update(ctx context.Context, existingURL string, req domain.UploadRequest) (string, error) {
	name, ext, err := validate(req)
	if err != nil {
		return "", err
	}

	if existingURL != "" {
		key := s.storage.KeyFromURL(existingURL)
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete existing object", "url", existingURL, "key", key, "error", err)
		} else {
			s.logger.Info("existing object deleted", "key", key)
		}
	}

	return s.run(ctx, req, name, ext)
}
