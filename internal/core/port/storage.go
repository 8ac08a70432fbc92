package port

import (
	"context"
	"io"
)

// ObjectStorage is an interface to define object storage interactions
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) string
	Bucket() string
}
