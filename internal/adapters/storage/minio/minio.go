package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio and any S3 compatible store
type Adapter struct {
	client *minio.Client
	config config.StorageConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter. The bucket is created on startup only when
// StorageConfig.CreateBucket is set.
func NewAdapter(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	if cfg.CreateBucket {
		exists, err := client.BucketExists(ctx, cfg.BucketName)
		if err != nil {
			return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
				return nil, fmt.Errorf("failed to create bucket: %w", err)
			}
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Put uploads body under key as a publicly readable object
func (a *Adapter) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	info, err := a.client.PutObject(ctx, a.config.BucketName, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"Title":     "File Upload - " + path.Base(key),
			"x-amz-acl": "public-read",
		},
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", domain.ErrStorage, key, err)
	}

	a.logger.Info("object uploaded", "bucket", a.config.BucketName, "key", key, "size", info.Size)
	return nil
}

// Delete removes key from the bucket. Removing a missing key succeeds.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", domain.ErrStorage, key, err)
	}

	a.logger.Info("object deleted", "bucket", a.config.BucketName, "key", key)
	return nil
}

// PublicURL composes the public URL of key
func (a *Adapter) PublicURL(key string) string {
	return strings.TrimSuffix(a.config.PublicBaseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

// KeyFromURL recovers the object key of a URL built by PublicURL.
// URLs from another host keep only their last segment, re-prefixed with its folder.
// Query and fragment are never part of the key.
func (a *Adapter) KeyFromURL(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}

	base := strings.TrimSuffix(a.config.PublicBaseURL, "/") + "/"
	if key, ok := strings.CutPrefix(rawURL, base); ok && key != "" {
		return key
	}

	return domain.StorageKey(path.Base(strings.TrimSuffix(rawURL, "/")))
}

// Bucket returns the name of the bucket objects are written to
func (a *Adapter) Bucket() string {
	return a.config.BucketName
}
