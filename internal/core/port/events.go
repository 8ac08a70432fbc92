package port

import (
	"context"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
)

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// EventPublisher is an interface to define an event publisher
type EventPublisher interface {
	Publish(ctx context.Context, event domain.MediaEvent) error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
