package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one published notification. Events are immutable once created.
type Event struct {
	// ID uniquely identifies this event instance.
	ID string

	// Topic is the hierarchical event type, e.g. "scroll.update".
	Topic Topic

	// Payload is the event-specific data.
	Payload any

	// Source identifies the component that published the event.
	Source string

	// Timestamp is when the event was created.
	Timestamp time.Time
}

// NewEvent creates an event with a fresh id and the current time.
func NewEvent(t Topic, payload any, source string) Event {
	return Event{
		ID:        uuid.NewString(),
		Topic:     t,
		Payload:   payload,
		Source:    source,
		Timestamp: time.Now(),
	}
}
