package media

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"

	MessageSuccess           = "Success Request"
	MessageBadRequest        = "Failed Request"
	MessageBadCredentials    = "Bad Credentials"
	MessageContentNotAllowed = "Content Not Allowed"
	MessageInternalError     = "Internal Server Error"
)

// V1Response is the envelope returned by every media route
type V1Response struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Meta   V1Meta `json:"meta"`
}

// V1Meta describes the outcome of a request
type V1Meta struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	StatusCode  int    `json:"statusCode"`
	Description string `json:"description"`
}

// V1MediaData is the payload of a successful upload or update
type V1MediaData struct {
	ImageURL string `json:"imageUrl"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, statusCode int, resp V1Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, logger *slog.Logger, url, description string) {
	writeJSON(w, logger, http.StatusOK, V1Response{
		Status: StatusSuccess,
		Data:   V1MediaData{ImageURL: url},
		Meta: V1Meta{
			Message:     MessageSuccess,
			StatusCode:  http.StatusOK,
			Description: description,
		},
	})
}

func writeFailure(w http.ResponseWriter, logger *slog.Logger, statusCode int, message, description string) {
	writeJSON(w, logger, statusCode, V1Response{
		Status: StatusFailed,
		Data:   description,
		Meta: V1Meta{
			Error:       true,
			Message:     message,
			StatusCode:  statusCode,
			Description: description,
		},
	})
}

// WriteUnauthorized renders the envelope for a rejected bearer token
func WriteUnauthorized(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, logger, http.StatusUnauthorized, MessageBadCredentials, "Token is not recognized")
	}
}

// writeError maps err onto the response envelope
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		writeFailure(w, logger, http.StatusBadRequest, MessageBadRequest, err.Error())
	case domain.KindInappropriateContent:
		writeFailure(w, logger, http.StatusUnprocessableEntity, MessageContentNotAllowed, "File contains inappropriate content")
	default:
		writeFailure(w, logger, http.StatusInternalServerError, MessageInternalError, string(domain.KindOf(err)))
	}
}
