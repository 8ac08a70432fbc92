package media

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

func (s *mediaService) Upload(ctx context.Context, req domain.UploadRequest) (string, error) {
	name, ext, err := validate(req)
	if err != nil {
		return "", err
	}

	return s.run(ctx, req, name, ext)
}
