package media

import (
	"net/http"
)

func (h *HandlerV1) UploadMediaV1(w http.ResponseWriter, r *http.Request) {
	parsed, err := h.parseUpload(w, r)
	if err != nil {
		h.logger.Warn("invalid upload request", "error", err)
		writeError(w, h.logger, err)
		return
	}
	defer parsed.Close()

	h.logger.Info("processing media upload", "filename", parsed.request.Filename, "usage", parsed.request.Usage)

	url, err := h.mediaService.Upload(r.Context(), parsed.request)
	if err != nil {
		h.logger.Error("media upload failed", "filename", parsed.request.Filename, "error", err)
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, h.logger, url, "Uploaded successfully")
}
