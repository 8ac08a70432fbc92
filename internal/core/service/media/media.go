package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"
)

// Dependencies are the long-lived collaborators shared by every run
type Dependencies struct {
	Storage     port.ObjectStorage
	Moderation  port.ModerationGateway
	Quota       port.QuotaGuard
	Transcoder  port.Transcoder
	Derivatives port.DerivativeService
	Publisher   port.EventPublisher
	Records     port.UploadRecordRepository
	Observer    port.PipelineObserver
}

type mediaService struct {
	storage     port.ObjectStorage
	moderation  port.ModerationGateway
	quota       port.QuotaGuard
	transcoder  port.Transcoder
	derivatives port.DerivativeService
	publisher   port.EventPublisher
	records     port.UploadRecordRepository
	observer    port.PipelineObserver
	tempDir     string
	logger      *slog.Logger
}

// NewMediaService creates the upload orchestrator.
// Per-run workspaces are created under tempDir, or the OS default when empty.
func NewMediaService(deps Dependencies, tempDir string, logger *slog.Logger) port.MediaService {
	return &mediaService{
		storage:     deps.Storage,
		moderation:  deps.Moderation,
		quota:       deps.Quota,
		transcoder:  deps.Transcoder,
		derivatives: deps.Derivatives,
		publisher:   deps.Publisher,
		records:     deps.Records,
		observer:    deps.Observer,
		tempDir:     tempDir,
		logger:      logger,
	}
}

// validate checks the request without touching any resource and returns
// the sanitized filename and its lower-cased extension.
func validate(req domain.UploadRequest) (string, string, error) {
	if req.Body == nil {
		return "", "", fmt.Errorf("%w: file content is missing", domain.ErrValidation)
	}

	name := filepath.Base(strings.TrimSpace(req.Filename))
	if req.Filename == "" || name == "." || name == string(filepath.Separator) {
		return "", "", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMissingFilename)
	}

	ext := domain.Extension(name)
	if ext == "" {
		return "", "", fmt.Errorf("%w: %w: %s", domain.ErrValidation, domain.ErrMissingExtension, name)
	}

	return name, ext, nil
}

// materialize writes the uploaded bytes into a fresh workspace owned by this run
func (s *mediaService) materialize(body io.Reader, name, ext string) (*domain.ProcessedArtifact, error) {
	workDir, err := os.MkdirTemp(s.tempDir, domain.WorkspacePrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: create workspace: %w", domain.ErrUnexpected, err)
	}

	classification := domain.Classify(ext)
	artifact := &domain.ProcessedArtifact{
		WorkDir:       workDir,
		OriginalPath:  filepath.Join(workDir, name),
		ProcessedPath: filepath.Join(workDir, name),
		FinalFilename: name,
		Extension:     ext,
		Kind:          classification.Kind,
		ContentType:   classification.ContentType,
	}

	f, err := os.OpenFile(artifact.OriginalPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return artifact, fmt.Errorf("%w: create temp file: %w", domain.ErrUnexpected, err)
	}

	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return artifact, fmt.Errorf("%w: write temp file: %w", domain.ErrUnexpected, err)
	}

	s.logger.Info("temporary file created", "name", name, "size", written)
	return artifact, nil
}

// cleanup removes the run's workspace and everything in it
func (s *mediaService) cleanup(artifact *domain.ProcessedArtifact) {
	if artifact == nil || artifact.WorkDir == "" {
		return
	}
	if err := os.RemoveAll(artifact.WorkDir); err != nil {
		s.logger.Warn("failed to remove temporary files", "dir", artifact.WorkDir, "error", err)
		return
	}
	s.logger.Debug("temporary files removed", "dir", artifact.WorkDir)
}

// stage runs fn and reports its duration and outcome to the observer
func (s *mediaService) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.observer.RecordStage(name, time.Since(start), err)
	return err
}

// put uploads the processed file of artifact under key
func (s *mediaService) put(ctx context.Context, artifact *domain.ProcessedArtifact, key string) error {
	return s.stage("upload", func() error {
		size, err := artifact.Size()
		if err != nil {
			return fmt.Errorf("%w: stat %s: %w", domain.ErrUnexpected, artifact.ProcessedPath, err)
		}

		f, err := os.Open(artifact.ProcessedPath)
		if err != nil {
			return fmt.Errorf("%w: open %s: %w", domain.ErrUnexpected, artifact.ProcessedPath, err)
		}
		defer f.Close()

		if err := s.storage.Put(ctx, key, f, size, artifact.ContentType); err != nil {
			return err
		}
		s.observer.RecordUpload(artifact.Kind, size)
		s.logger.Info("file uploaded", "key", key, "size", size)
		return nil
	})
}

// classify wraps errors outside the taxonomy as unexpected
func classify(err error) error {
	if err == nil || domain.IsClassified(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUnexpected, err)
}
