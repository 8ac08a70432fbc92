package media

import (
	"fmt"
	"net/http"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

func (h *HandlerV1) UpdateMediaV1(w http.ResponseWriter, r *http.Request) {
	parsed, err := h.parseUpload(w, r)
	if err != nil {
		h.logger.Warn("invalid update request", "error", err)
		writeError(w, h.logger, err)
		return
	}
	defer parsed.Close()

	existingURL := r.FormValue("imageUrl")
	if existingURL == "" {
		writeError(w, h.logger, fmt.Errorf("%w: imageUrl is missing", domain.ErrValidation))
		return
	}

	h.logger.Info("processing media update", "url", existingURL, "filename", parsed.request.Filename)

	url, err := h.mediaService.Update(r.Context(), existingURL, parsed.request)
	if err != nil {
		h.logger.Error("media update failed", "url", existingURL, "error", err)
		writeError(w, h.logger, err)
		return
	}

	if err := h.notifier.NotifyUpdate(r.Context(), url, parsed.request.Usage, parsed.request.Token); err != nil {
		h.logger.Warn("failed to forward media update", "url", url, "error", err)
	}

	writeSuccess(w, h.logger, url, "Updated successfully")
}
