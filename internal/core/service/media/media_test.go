package media_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/eventbroker/nats"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/imageservice"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/metrics/prometheus"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/repository"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/storage"
	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/transcoder"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/media"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/moderation"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/service/quota"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	storage     *storage.MockStorage
	gateway     *moderation.MockModerationGateway
	quota       *quota.MockQuotaGuard
	transcoder  *transcoder.MockTranscoder
	derivatives *imageservice.MockDerivativeService
	publisher   *nats.MockPublisher
	records     *repository.MockUploadRecordRepository
	tempDir     string
	service     port.MediaService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		storage:     storage.NewMockStorage(),
		gateway:     moderation.NewMockModerationGateway(),
		quota:       quota.NewMockQuotaGuard(),
		transcoder:  transcoder.NewMockTranscoder(),
		derivatives: imageservice.NewMockDerivativeService(),
		publisher:   nats.NewMockPublisher(),
		records:     repository.NewMockUploadRecordRepository(),
		tempDir:     t.TempDir(),
	}

	f.service = media.NewMediaService(media.Dependencies{
		Storage:     f.storage,
		Moderation:  f.gateway,
		Quota:       f.quota,
		Transcoder:  f.transcoder,
		Derivatives: f.derivatives,
		Publisher:   f.publisher,
		Records:     f.records,
		Observer:    prometheus.NopObserver{},
	}, f.tempDir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.storage.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
	f.quota.AssertExpectations(t)
	f.transcoder.AssertExpectations(t)
	f.derivatives.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.records.AssertExpectations(t)
}

func (f *fixture) assertWorkspaceRemoved(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files must be removed after the run")
}

func (f *fixture) expectRecord(status domain.UploadStatus, key string) {
	f.records.On("Create", mock.Anything, mock.MatchedBy(func(r domain.UploadRecord) bool {
		return r.Status == status && r.StorageKey == key
	})).Return(nil).Once()
}

func (f *fixture) expectEvent(eventType domain.EventType, key string) {
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.MediaEvent) bool {
		return e.Type == eventType && e.StorageKey == key
	})).Return(nil).Once()
}

func newRequest(filename, content string) domain.UploadRequest {
	return domain.UploadRequest{
		Body:     strings.NewReader(content),
		Filename: filename,
		Usage:    domain.UsagePost,
		UserID:   "user-1",
		Token:    "Bearer token",
	}
}

// writeCompressed makes the mocked transcoder behave like ffmpeg and produce an output file
func writeCompressed(t *testing.T) func(mock.Arguments) {
	return func(args mock.Arguments) {
		input, err := os.ReadFile(args.String(1))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(args.String(2), append([]byte("compressed:"), input...), 0o600))
	}
}

func TestMediaService_Upload_Image(t *testing.T) {
	t.Run("clean image below threshold is moderated and resolves to the derivative url", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		snapshot := domain.QuotaSnapshot{ImageCount: 2}
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(snapshot)
		f.quota.On("ShouldModerate", domain.MediaKindImage, snapshot).Return(true)
		f.gateway.On("ModerateImage", mock.Anything, []byte("jpeg-bytes")).
			Return(domain.ModerationVerdict{Labels: []string{"Sport"}}, nil)
		f.storage.On("Put", mock.Anything, "images/photo.jpg", mock.Anything, int64(10), "image/jpeg").
			Run(func(args mock.Arguments) {
				body, err := io.ReadAll(args.Get(2).(io.Reader))
				require.NoError(t, err)
				assert.Equal(t, "jpeg-bytes", string(body))
			}).Return(nil)
		f.storage.On("PublicURL", "images/photo.jpg").Return("https://cdn.example.com/images/photo.jpg")
		f.derivatives.On("DeriveURLs", mock.Anything, "photo.jpg").Return(&domain.DerivativeURLs{
			Status: domain.DerivativeStatusSuccess,
			URLs:   domain.DerivativeSet{Story: "https://cdn.example.com/story/photo.jpg"},
		}, nil)
		f.expectRecord(domain.UploadStatusPublished, "images/photo.jpg")
		f.expectEvent(domain.EventTypePublished, "images/photo.jpg")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("photo.jpg", "jpeg-bytes"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/story/photo.jpg", url)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("image above threshold skips moderation and falls back to the plain url", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		snapshot := domain.QuotaSnapshot{ImageCount: 10}
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(snapshot)
		f.quota.On("ShouldModerate", domain.MediaKindImage, snapshot).Return(false)
		f.storage.On("Put", mock.Anything, "images/photo.png", mock.Anything, int64(3), "image/png").Return(nil)
		f.storage.On("PublicURL", "images/photo.png").Return("https://cdn.example.com/images/photo.png")
		f.derivatives.On("DeriveURLs", mock.Anything, "photo.png").
			Return(&domain.DerivativeURLs{Status: "error"}, nil)
		f.expectRecord(domain.UploadStatusPublished, "images/photo.png")
		f.expectEvent(domain.EventTypePublished, "images/photo.png")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("photo.png", "png"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/images/photo.png", url)
		f.gateway.AssertNotCalled(t, "ModerateImage", mock.Anything, mock.Anything)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("derivative service failure falls back to the plain url", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.quota.On("ShouldModerate", domain.MediaKindImage, domain.QuotaSnapshot{}).Return(false)
		f.storage.On("Put", mock.Anything, "images/photo.jpg", mock.Anything, int64(3), "image/jpeg").Return(nil)
		f.storage.On("PublicURL", "images/photo.jpg").Return("https://cdn.example.com/images/photo.jpg")
		f.derivatives.On("DeriveURLs", mock.Anything, "photo.jpg").
			Return(&domain.DerivativeURLs{Status: "error"}, domain.ErrExternalServiceUnavailable)
		f.expectRecord(domain.UploadStatusPublished, "images/photo.jpg")
		f.expectEvent(domain.EventTypePublished, "images/photo.jpg")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("photo.jpg", "jpg"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/images/photo.jpg", url)
		f.assertExpectations(t)
	})

	t.Run("inappropriate image is never stored", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.quota.On("ShouldModerate", domain.MediaKindImage, domain.QuotaSnapshot{}).Return(true)
		f.gateway.On("ModerateImage", mock.Anything, []byte("bad")).
			Return(domain.ModerationVerdict{Inappropriate: true, Labels: []string{"Explicit Nudity"}}, nil)
		f.expectRecord(domain.UploadStatusRejected, "images/photo.jpg")
		f.expectEvent(domain.EventTypeRejected, "images/photo.jpg")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("photo.jpg", "bad"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrInappropriateContent)
		assert.Empty(t, url)
		f.storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("moderation failure stops the upload", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.quota.On("ShouldModerate", domain.MediaKindImage, domain.QuotaSnapshot{}).Return(true)
		f.gateway.On("ModerateImage", mock.Anything, mock.Anything).
			Return(domain.ModerationVerdict{}, fmt.Errorf("%w: throttled", domain.ErrModeration))
		f.expectRecord(domain.UploadStatusFailed, "images/photo.jpg")

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("photo.jpg", "jpg"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrModeration)
		f.storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})
}

func TestMediaService_Upload_Video(t *testing.T) {
	t.Run("clean video is transcoded, stored and moderated", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{VideoCount: 1})
		f.quota.On("ShouldModerate", domain.MediaKindVideo, domain.QuotaSnapshot{VideoCount: 1}).Return(true)
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			assert.True(t, strings.HasSuffix(args.String(1), "/clip.MOV"))
			assert.True(t, strings.HasSuffix(args.String(2), "/compressed_clip.MOV"))
			writeCompressed(t)(args)
		}).Return(nil)
		f.storage.On("Put", mock.Anything, "video/compressed_clip.MOV", mock.Anything, int64(len("compressed:raw")), "video/quicktime").Return(nil)
		f.gateway.On("ModerateVideo", mock.Anything, "video/compressed_clip.MOV").Return(domain.ModerationVerdict{}, nil)
		f.storage.On("PublicURL", "video/compressed_clip.MOV").Return("https://cdn.example.com/video/compressed_clip.MOV")
		f.expectRecord(domain.UploadStatusPublished, "video/compressed_clip.MOV")
		f.expectEvent(domain.EventTypePublished, "video/compressed_clip.MOV")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("clip.MOV", "raw"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/video/compressed_clip.MOV", url)
		f.derivatives.AssertNotCalled(t, "DeriveURLs", mock.Anything, mock.Anything)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("inappropriate video is deleted after upload", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.quota.On("ShouldModerate", domain.MediaKindVideo, domain.QuotaSnapshot{}).Return(true)
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).Run(writeCompressed(t)).Return(nil)
		f.storage.On("Put", mock.Anything, "video/compressed_clip.mp4", mock.Anything, mock.Anything, "video/mp4").Return(nil)
		f.gateway.On("ModerateVideo", mock.Anything, "video/compressed_clip.mp4").
			Return(domain.ModerationVerdict{Inappropriate: true, Labels: []string{"Violence"}}, nil)
		f.storage.On("Delete", mock.Anything, "video/compressed_clip.mp4").Return(nil)
		f.expectRecord(domain.UploadStatusRejected, "video/compressed_clip.mp4")
		f.expectEvent(domain.EventTypeRejected, "video/compressed_clip.mp4")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("clip.mp4", "raw"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrInappropriateContent)
		assert.Empty(t, url)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("failed moderation job deletes the object and requests removal when delete fails", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.quota.On("ShouldModerate", domain.MediaKindVideo, domain.QuotaSnapshot{}).Return(true)
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).Run(writeCompressed(t)).Return(nil)
		f.storage.On("Put", mock.Anything, "video/compressed_clip.mp4", mock.Anything, mock.Anything, "video/mp4").Return(nil)
		f.gateway.On("ModerateVideo", mock.Anything, "video/compressed_clip.mp4").
			Return(domain.ModerationVerdict{}, fmt.Errorf("%w: job FAILED: unsupported codec", domain.ErrModeration))
		f.storage.On("Delete", mock.Anything, "video/compressed_clip.mp4").Return(fmt.Errorf("%w: unreachable", domain.ErrStorage))

		var record domain.UploadRecord
		var removal domain.MediaEvent
		f.records.On("Create", mock.Anything, mock.MatchedBy(func(r domain.UploadRecord) bool {
			return r.Status == domain.UploadStatusFailed && r.StorageKey == "video/compressed_clip.mp4"
		})).Run(func(args mock.Arguments) {
			record = args.Get(1).(domain.UploadRecord)
		}).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.MediaEvent) bool {
			return e.Type == domain.EventTypeRemovalRequested && e.StorageKey == "video/compressed_clip.mp4"
		})).Run(func(args mock.Arguments) {
			removal = args.Get(1).(domain.MediaEvent)
		}).Return(nil).Once()

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("clip.mp4", "raw"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrModeration)
		assert.NotEmpty(t, removal.Reason)
		assert.False(t, removal.OccurredAt.Before(record.CreatedAt), "the failed run's ledger row must not look newer than its removal request")
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("inappropriate video whose delete fails is rejected and handed to the reconciler", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.quota.On("ShouldModerate", domain.MediaKindVideo, domain.QuotaSnapshot{}).Return(true)
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).Run(writeCompressed(t)).Return(nil)
		f.storage.On("Put", mock.Anything, "video/compressed_clip.mp4", mock.Anything, mock.Anything, "video/mp4").Return(nil)
		f.gateway.On("ModerateVideo", mock.Anything, "video/compressed_clip.mp4").
			Return(domain.ModerationVerdict{Inappropriate: true, Labels: []string{"Violence"}}, nil)
		f.storage.On("Delete", mock.Anything, "video/compressed_clip.mp4").Return(fmt.Errorf("%w: unreachable", domain.ErrStorage))
		f.expectRecord(domain.UploadStatusRejected, "video/compressed_clip.mp4")
		f.expectEvent(domain.EventTypeRejected, "video/compressed_clip.mp4")
		f.expectEvent(domain.EventTypeRemovalRequested, "video/compressed_clip.mp4")

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("clip.mp4", "raw"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrInappropriateContent)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("video above threshold is published without moderation", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{VideoCount: 5})
		f.quota.On("ShouldModerate", domain.MediaKindVideo, domain.QuotaSnapshot{VideoCount: 5}).Return(false)
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).Run(writeCompressed(t)).Return(nil)
		f.storage.On("Put", mock.Anything, "video/compressed_clip.mp4", mock.Anything, mock.Anything, "video/mp4").Return(nil)
		f.storage.On("PublicURL", "video/compressed_clip.mp4").Return("https://cdn.example.com/video/compressed_clip.mp4")
		f.expectRecord(domain.UploadStatusPublished, "video/compressed_clip.mp4")
		f.expectEvent(domain.EventTypePublished, "video/compressed_clip.mp4")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("clip.mp4", "raw"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/video/compressed_clip.mp4", url)
		f.gateway.AssertNotCalled(t, "ModerateVideo", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("transcoding failure stores nothing and cleans up", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: ffmpeg exited with code 1", domain.ErrTranscoding))
		f.expectRecord(domain.UploadStatusFailed, "video/compressed_clip.mp4")

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("clip.mp4", "raw"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrTranscoding)
		f.storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("unclassified failure is reported as unexpected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.transcoder.On("Compress", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))
		f.expectRecord(domain.UploadStatusFailed, "video/compressed_clip.mp4")

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("clip.mp4", "raw"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrUnexpected)
		assert.Equal(t, domain.KindUnexpected, domain.KindOf(err))
		f.assertExpectations(t)
	})
}

func TestMediaService_Upload_Other(t *testing.T) {
	t.Run("document is stored without moderation", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.storage.On("Put", mock.Anything, "documents/cv.pdf", mock.Anything, int64(3), "application/pdf").Return(nil)
		f.storage.On("PublicURL", "documents/cv.pdf").Return("https://cdn.example.com/documents/cv.pdf")
		f.expectRecord(domain.UploadStatusPublished, "documents/cv.pdf")
		f.expectEvent(domain.EventTypePublished, "documents/cv.pdf")

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("cv.pdf", "pdf"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/cv.pdf", url)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("storage failure is recorded and not published", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.storage.On("Put", mock.Anything, "others/archive.zip", mock.Anything, int64(3), "application/octet-stream").
			Return(fmt.Errorf("%w: access denied", domain.ErrStorage))
		f.expectRecord(domain.UploadStatusFailed, "others/archive.zip")

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("archive.zip", "zip"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrStorage)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})

	t.Run("ledger and broker failures do not fail the upload", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.storage.On("Put", mock.Anything, "documents/cv.pdf", mock.Anything, mock.Anything, "application/pdf").Return(nil)
		f.storage.On("PublicURL", "documents/cv.pdf").Return("https://cdn.example.com/documents/cv.pdf")
		f.records.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		// Act
		url, err := f.service.Upload(context.Background(), newRequest("cv.pdf", "pdf"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/cv.pdf", url)
		f.assertExpectations(t)
	})
}

func TestMediaService_Upload_Validation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		target   error
	}{
		{"empty filename", "", domain.ErrMissingFilename},
		{"missing extension", "README", domain.ErrMissingExtension},
		{"trailing dot", "photo.", domain.ErrMissingExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t)

			// Act
			_, err := f.service.Upload(context.Background(), newRequest(tt.filename, "data"))

			// Assert
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.target)
			f.quota.AssertNotCalled(t, "Snapshot", mock.Anything, mock.Anything, mock.Anything)
			f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.assertWorkspaceRemoved(t)
		})
	}

	t.Run("missing body", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		req := newRequest("photo.jpg", "")
		req.Body = nil

		// Act
		_, err := f.service.Upload(context.Background(), req)

		// Assert
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("path components are stripped from the filename", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.storage.On("Put", mock.Anything, "documents/cv.pdf", mock.Anything, mock.Anything, "application/pdf").Return(nil)
		f.storage.On("PublicURL", "documents/cv.pdf").Return("https://cdn.example.com/documents/cv.pdf")
		f.expectRecord(domain.UploadStatusPublished, "documents/cv.pdf")
		f.expectEvent(domain.EventTypePublished, "documents/cv.pdf")

		// Act
		_, err := f.service.Upload(context.Background(), newRequest("../../etc/cv.pdf", "pdf"))

		// Assert
		assert.NoError(t, err)
		f.assertExpectations(t)
		f.assertWorkspaceRemoved(t)
	})
}

func TestMediaService_Update(t *testing.T) {
	t.Run("existing object is deleted before the new upload", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		existing := "https://cdn.example.com/documents/old.pdf"
		f.storage.On("KeyFromURL", existing).Return("documents/old.pdf")
		f.storage.On("Delete", mock.Anything, "documents/old.pdf").Return(nil)
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.storage.On("Put", mock.Anything, "documents/new.pdf", mock.Anything, mock.Anything, "application/pdf").Return(nil)
		f.storage.On("PublicURL", "documents/new.pdf").Return("https://cdn.example.com/documents/new.pdf")
		f.expectRecord(domain.UploadStatusPublished, "documents/new.pdf")
		f.expectEvent(domain.EventTypePublished, "documents/new.pdf")

		// Act
		url, err := f.service.Update(context.Background(), existing, newRequest("new.pdf", "pdf"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/new.pdf", url)
		f.assertExpectations(t)
	})

	t.Run("failed delete of the existing object is ignored", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		existing := "https://cdn.example.com/documents/old.pdf"
		f.storage.On("KeyFromURL", existing).Return("documents/old.pdf")
		f.storage.On("Delete", mock.Anything, "documents/old.pdf").Return(fmt.Errorf("%w: no such key", domain.ErrStorage))
		f.quota.On("Snapshot", mock.Anything, "user-1", "Bearer token").Return(domain.QuotaSnapshot{})
		f.storage.On("Put", mock.Anything, "documents/new.pdf", mock.Anything, mock.Anything, "application/pdf").Return(nil)
		f.storage.On("PublicURL", "documents/new.pdf").Return("https://cdn.example.com/documents/new.pdf")
		f.expectRecord(domain.UploadStatusPublished, "documents/new.pdf")
		f.expectEvent(domain.EventTypePublished, "documents/new.pdf")

		// Act
		url, err := f.service.Update(context.Background(), existing, newRequest("new.pdf", "pdf"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/new.pdf", url)
		f.assertExpectations(t)
	})

	t.Run("invalid request leaves the existing object untouched", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.service.Update(context.Background(), "https://cdn.example.com/documents/old.pdf", newRequest("", "pdf"))

		// Assert
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
