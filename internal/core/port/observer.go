package port

import (
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// PipelineObserver captures telemetry for orchestration stages
type PipelineObserver interface {
	RecordStage(stage string, duration time.Duration, err error)
	RecordVerdict(kind domain.MediaKind, verdict domain.ModerationVerdict)
	RecordUpload(kind domain.MediaKind, sizeBytes int64)
}
