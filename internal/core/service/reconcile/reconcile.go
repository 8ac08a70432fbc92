package reconcile

import (
	"log/slog"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"
)

type reconcileService struct {
	storage port.ObjectStorage
	records port.UploadRecordRepository
	logger  *slog.Logger
}

// NewReconcileService creates the handler for removal requests emitted when an
// inline delete of a rejected object failed
func NewReconcileService(storage port.ObjectStorage, records port.UploadRecordRepository, logger *slog.Logger) port.MessageService {
	return &reconcileService{
		storage: storage,
		records: records,
		logger:  logger,
	}
}
