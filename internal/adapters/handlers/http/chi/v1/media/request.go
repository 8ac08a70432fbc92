package media

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/BhagyaUdayangani/S3-Service/internal/adapters/handlers/http/chi/auth"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// multipartMemory is the part of a form kept in memory, the rest spills to disk
const multipartMemory = 32 << 20

// parsedUpload holds the fields of a media form
type parsedUpload struct {
	file    multipart.File
	request domain.UploadRequest
	form    *multipart.Form
}

func (p *parsedUpload) Close() {
	if p.file != nil {
		_ = p.file.Close()
	}
	if p.form != nil {
		_ = p.form.RemoveAll()
	}
}

// parseUsage accepts a usage category in any case, empty means POST
func parseUsage(raw string) (domain.UsageCategory, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.UsagePost, nil
	}
	usage, err := domain.ParseUsageCategory(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: %w: %s", domain.ErrValidation, err, raw)
	}
	return usage, nil
}

// parseUpload reads the multipart form and builds the upload request for the principal
func (h *HandlerV1) parseUpload(w http.ResponseWriter, r *http.Request) (*parsedUpload, error) {
	principal, ok := auth.FromContext(r.Context())
	if !ok || principal.UserID == "" {
		return nil, fmt.Errorf("%w: missing principal", domain.ErrValidation)
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: invalid multipart form: %w", domain.ErrValidation, err)
	}

	parsed := &parsedUpload{form: r.MultipartForm}

	usage, err := parseUsage(r.FormValue("imageType"))
	if err != nil {
		parsed.Close()
		return nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		parsed.Close()
		return nil, fmt.Errorf("%w: file part is missing: %w", domain.ErrValidation, err)
	}
	parsed.file = file

	parsed.request = domain.UploadRequest{
		Body:     file,
		Filename: header.Filename,
		Usage:    usage,
		UserID:   principal.UserID,
		Token:    principal.Token,
	}
	return parsed, nil
}
