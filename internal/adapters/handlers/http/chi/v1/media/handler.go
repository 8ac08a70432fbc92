package media

import (
	"log/slog"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 media routes
type HandlerV1 struct {
	mediaService  port.MediaService
	notifier      port.UpdateNotifier
	maxUploadSize int64
	logger        *slog.Logger
}

// NewMediaHandlerV1 creates HandlerV1
func NewMediaHandlerV1(service port.MediaService, notifier port.UpdateNotifier, maxUploadSize int64, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		mediaService:  service,
		notifier:      notifier,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.UploadMediaV1)
	router.Post("/update", h.UpdateMediaV1)

	return router
}
