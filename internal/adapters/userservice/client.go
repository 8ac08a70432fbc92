package userservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// postCount is the payload exchanged with the user service
type postCount struct {
	AuthUserID string `json:"authUserId"`
	Count      int64  `json:"count,omitempty"`
	ImageCount int64  `json:"imageCount,omitempty"`
	VideoCount int64  `json:"videoCount,omitempty"`
}

// Client fetches post counts from the user service
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewClient returns Client. Requests are bounded by the caller's context.
func NewClient(httpClient *http.Client, cfg config.QuotaConfig, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		url:        strings.TrimSuffix(cfg.BaseURL, "/") + cfg.Path,
		logger:     logger,
	}
}

// GetPostCounts asks the user service how many images and videos userID has posted.
// token is forwarded verbatim as the Authorization header.
func (c *Client) GetPostCounts(ctx context.Context, userID, token string) (domain.QuotaSnapshot, error) {
	body, err := json.Marshal(postCount{AuthUserID: userID})
	if err != nil {
		return domain.QuotaSnapshot{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.QuotaSnapshot{}, err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.QuotaSnapshot{}, fmt.Errorf("%w: %w", domain.ErrExternalServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.QuotaSnapshot{}, fmt.Errorf("%w: user service returned status %d",
			domain.ErrExternalServiceUnavailable, resp.StatusCode)
	}

	var out postCount
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.QuotaSnapshot{}, fmt.Errorf("%w: decode post count: %w", domain.ErrExternalServiceUnavailable, err)
	}

	c.logger.Debug("post count response", "user_id", userID, "count", out.Count)
	return domain.QuotaSnapshot{ImageCount: out.ImageCount, VideoCount: out.VideoCount}, nil
}
