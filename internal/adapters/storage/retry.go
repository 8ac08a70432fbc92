package storage

import (
	"context"
	"io"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"

	"github.com/cenkalti/backoff/v4"
)

// RetryingStorage wraps an object store and retries best-effort deletes.
// Uploads are not retried since the body reader can only be consumed once.
type RetryingStorage struct {
	port.ObjectStorage
	buildBackoff func() backoff.BackOff
}

// NewRetryingStorage creates a store retrying Delete with factory's policy.
func NewRetryingStorage(delegate port.ObjectStorage, factory func() backoff.BackOff) *RetryingStorage {
	if factory == nil {
		factory = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 3 * time.Second
			return b
		}
	}
	return &RetryingStorage{ObjectStorage: delegate, buildBackoff: factory}
}

func (s *RetryingStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return s.ObjectStorage.Put(ctx, key, body, size, contentType)
}

func (s *RetryingStorage) Delete(ctx context.Context, key string) error {
	b := backoff.WithContext(s.buildBackoff(), ctx)
	return backoff.Retry(func() error { return s.ObjectStorage.Delete(ctx, key) }, b)
}

var _ port.ObjectStorage = (*RetryingStorage)(nil)
