package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is a type that represents the type of a media event
type EventType string

const (
	EventTypePublished        EventType = "published"
	EventTypeRejected         EventType = "rejected"
	EventTypeRemovalRequested EventType = "removal_requested"
)

// MediaEvent is emitted on the message broker after an orchestration run
type MediaEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	UserID     string    `json:"user_id"`
	StorageKey string    `json:"storage_key"`
	URL        string    `json:"url,omitempty"`
	Kind       MediaKind `json:"kind"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMediaEvent builds an event with a fresh id and timestamp
func NewMediaEvent(eventType EventType, userID, storageKey string, kind MediaKind) MediaEvent {
	return MediaEvent{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		StorageKey: storageKey,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
}
