package moderation

import (
	"log/slog"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"

	"golang.org/x/time/rate"
)

type moderationGateway struct {
	detector        port.LabelDetector
	bucket          string
	minConfidence   float32
	blocklist       map[string]struct{}
	limiter         *rate.Limiter
	pollInterval    time.Duration
	maxPollDuration time.Duration
	logger          *slog.Logger
}

// NewModerationGateway creates a gateway checking content against the configured blocklist.
// Videos are looked up in bucket, where the orchestrator has already stored them.
func NewModerationGateway(detector port.LabelDetector, bucket string, cfg config.ModerationConfig, logger *slog.Logger) port.ModerationGateway {
	blocklist := make(map[string]struct{})
	for _, label := range cfg.Labels() {
		blocklist[label] = struct{}{}
	}

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &moderationGateway{
		detector:        detector,
		bucket:          bucket,
		minConfidence:   cfg.MinConfidence,
		blocklist:       blocklist,
		limiter:         rate.NewLimiter(limit, burst),
		pollInterval:    cfg.PollInterval,
		maxPollDuration: cfg.MaxPollDuration,
		logger:          logger,
	}
}

// verdict matches label names against the blocklist, exact and case-sensitive
func (g *moderationGateway) verdict(labels []string) ([]string, bool) {
	var flagged []string
	for _, label := range labels {
		if _, ok := g.blocklist[label]; ok {
			flagged = append(flagged, label)
		}
	}
	return flagged, len(flagged) > 0
}
