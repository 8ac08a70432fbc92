package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// run executes one orchestration: quota snapshot, workspace, branch by kind,
// ledger and events. The workspace is removed on every exit path.
func (s *mediaService) run(ctx context.Context, req domain.UploadRequest, name, ext string) (url string, err error) {
	snapshot := s.quota.Snapshot(ctx, req.UserID, req.Token)

	artifact, err := s.materialize(req.Body, name, ext)
	defer s.cleanup(artifact)
	if err != nil {
		return "", err
	}

	var key string
	defer func() {
		err = classify(err)
		s.finish(ctx, req, artifact, key, url, err)
	}()

	switch artifact.Kind {
	case domain.MediaKindVideo:
		key, url, err = s.processVideo(ctx, artifact, snapshot)
	case domain.MediaKindImage:
		key, url, err = s.processImage(ctx, artifact, snapshot, req.Usage)
	default:
		key, url, err = s.processOther(ctx, artifact)
	}
	if err != nil {
		return "", err
	}

	return url, nil
}

func (s *mediaService) processVideo(ctx context.Context, artifact *domain.ProcessedArtifact, snapshot domain.QuotaSnapshot) (string, string, error) {
	artifact.FinalFilename = domain.CompressedPrefix + artifact.FinalFilename
	artifact.ProcessedPath = filepath.Join(artifact.WorkDir, artifact.FinalFilename)

	err := s.stage("transcode", func() error {
		return s.transcoder.Compress(ctx, artifact.OriginalPath, artifact.ProcessedPath)
	})
	if err != nil {
		return "", "", err
	}

	key := domain.StorageKey(artifact.FinalFilename)
	if err := s.put(ctx, artifact, key); err != nil {
		return key, "", err
	}

	if !s.quota.ShouldModerate(domain.MediaKindVideo, snapshot) {
		s.logger.Info("moderation skipped above quota threshold", "key", key)
		return key, s.storage.PublicURL(key), nil
	}

	var verdict domain.ModerationVerdict
	err = s.stage("moderate", func() error {
		var err error
		verdict, err = s.moderation.ModerateVideo(ctx, key)
		return err
	})
	if err != nil {
		s.remove(ctx, artifact, key, err.Error())
		return key, "", err
	}

	s.observer.RecordVerdict(domain.MediaKindVideo, verdict)
	if verdict.Inappropriate {
		artifact.Inappropriate = true
		s.logger.Warn("video rejected by moderation", "key", key, "labels", verdict.Labels)
		s.remove(ctx, artifact, key, domain.ErrInappropriateContent.Error())
		return key, "", domain.ErrInappropriateContent
	}

	return key, s.storage.PublicURL(key), nil
}

func (s *mediaService) processImage(ctx context.Context, artifact *domain.ProcessedArtifact, snapshot domain.QuotaSnapshot, usage domain.UsageCategory) (string, string, error) {
	key := domain.StorageKey(artifact.FinalFilename)

	if s.quota.ShouldModerate(domain.MediaKindImage, snapshot) {
		content, err := os.ReadFile(artifact.OriginalPath)
		if err != nil {
			return key, "", fmt.Errorf("%w: read %s: %w", domain.ErrUnexpected, artifact.OriginalPath, err)
		}

		var verdict domain.ModerationVerdict
		err = s.stage("moderate", func() error {
			var err error
			verdict, err = s.moderation.ModerateImage(ctx, content)
			return err
		})
		if err != nil {
			return key, "", err
		}

		s.observer.RecordVerdict(domain.MediaKindImage, verdict)
		if verdict.Inappropriate {
			artifact.Inappropriate = true
			s.logger.Warn("image rejected by moderation", "name", artifact.FinalFilename, "labels", verdict.Labels)
			return key, "", domain.ErrInappropriateContent
		}
	} else {
		s.logger.Info("moderation skipped above quota threshold", "key", key)
	}

	if err := s.put(ctx, artifact, key); err != nil {
		return key, "", err
	}

	return key, s.imageURL(ctx, artifact.FinalFilename, key, usage), nil
}

func (s *mediaService) processOther(ctx context.Context, artifact *domain.ProcessedArtifact) (string, string, error) {
	key := domain.StorageKey(artifact.FinalFilename)
	if err := s.put(ctx, artifact, key); err != nil {
		return key, "", err
	}
	return key, s.storage.PublicURL(key), nil
}

// imageURL prefers the rendition matching usage and falls back to the plain object URL
func (s *mediaService) imageURL(ctx context.Context, name, key string, usage domain.UsageCategory) string {
	plain := s.storage.PublicURL(key)

	var derived *domain.DerivativeURLs
	err := s.stage("derive", func() error {
		var err error
		derived, err = s.derivatives.DeriveURLs(ctx, name)
		return err
	})
	if err != nil {
		s.logger.Warn("derivative service failed, using plain url", "key", key, "error", err)
		return plain
	}

	if derived == nil || derived.Status != domain.DerivativeStatusSuccess {
		return plain
	}
	if u := derived.For(usage); u != "" {
		return u
	}
	return plain
}

// remove deletes an object that must not stay published. A failed delete
// is left on the artifact for finish to hand over to the reconciler.
func (s *mediaService) remove(ctx context.Context, artifact *domain.ProcessedArtifact, key, reason string) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Error("failed to delete rejected object", "key", key, "error", err)
		artifact.RemovalReason = reason
		return
	}

	s.logger.Info("rejected object deleted", "key", key)
}
