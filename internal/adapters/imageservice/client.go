package imageservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// derivativeStatusError is reported when the image service gave no usable answer
const derivativeStatusError = "error"

type deriveRequest struct {
	ImageKey      string `json:"image_key"`
	Bucket        string `json:"bucket"`
	CloudFrontURL string `json:"cloudFrontUrl"`
}

type deriveResponse struct {
	Status string               `json:"status"`
	URLs   domain.DerivativeSet `json:"urls"`
}

type updateRequest struct {
	ImageURL  string               `json:"imageUrl"`
	ImageType domain.UsageCategory `json:"imageType"`
}

// Client talks to the image service that renders image derivatives
// and records profile image changes.
type Client struct {
	httpClient *http.Client
	cfg        config.ImageServiceConfig
	bucket     string
	publicHost string
	logger     *slog.Logger
}

// NewClient returns Client. publicBaseURL is sent without its scheme.
func NewClient(httpClient *http.Client, cfg config.ImageServiceConfig, bucket, publicBaseURL string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	host := strings.TrimPrefix(strings.TrimPrefix(publicBaseURL, "https://"), "http://")
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		bucket:     bucket,
		publicHost: strings.TrimSuffix(host, "/"),
		logger:     logger,
	}
}

func fallback() *domain.DerivativeURLs {
	return &domain.DerivativeURLs{Status: derivativeStatusError}
}

// DeriveURLs requests the resized renditions of an uploaded image.
// A non-success answer yields a fallback with status "error" and no error.
func (c *Client) DeriveURLs(ctx context.Context, fileKey string) (*domain.DerivativeURLs, error) {
	if c.cfg.DeriveURL == "" {
		return fallback(), nil
	}

	body, err := json.Marshal(deriveRequest{ImageKey: fileKey, Bucket: c.bucket, CloudFrontURL: c.publicHost})
	if err != nil {
		return fallback(), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.DeriveURL, bytes.NewReader(body))
	if err != nil {
		return fallback(), err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallback(), fmt.Errorf("%w: %w", domain.ErrExternalServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("image service error", "status", resp.StatusCode, "body", string(payload))
		return fallback(), nil
	}

	var out deriveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error("failed to parse image service response", "error", err)
		return fallback(), nil
	}

	return &domain.DerivativeURLs{Status: out.Status, URLs: out.URLs}, nil
}

// NotifyUpdate forwards a changed image URL with the caller's Authorization header.
// It is a no-op when no update endpoint is configured.
func (c *Client) NotifyUpdate(ctx context.Context, imageURL string, usage domain.UsageCategory, token string) error {
	if c.cfg.UpdateURL == "" {
		return nil
	}

	body, err := json.Marshal(updateRequest{ImageURL: imageURL, ImageType: usage})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UpdateURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrExternalServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: image service returned status %d", domain.ErrExternalServiceUnavailable, resp.StatusCode)
	}

	c.logger.Info("image update forwarded", "url", imageURL, "image_type", usage)
	return nil
}
