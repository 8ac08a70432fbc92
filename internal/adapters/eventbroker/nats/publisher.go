package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher emits media events on JetStream
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher connects to NATS and makes sure the media stream exists
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg.URL, cfg.StreamName+"-publisher", logger)
	if err != nil {
		return nil, err
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{logger: logger, conn: conn, js: js, config: cfg}, nil
}

// Subject returns the subject events of eventType are published on
func (p *Publisher) Subject(eventType domain.EventType) string {
	return p.config.SubjectPrefix + "." + string(eventType)
}

// Publish sends event, deduplicated by its id
func (p *Publisher) Publish(ctx context.Context, event domain.MediaEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	subject := p.Subject(event.Type)
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.ID.String())); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", subject, err)
	}

	p.logger.Debug("media event published", "subject", subject, "id", event.ID)
	return nil
}

// Close drains the connection
func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Drain()
	}
	return nil
}
