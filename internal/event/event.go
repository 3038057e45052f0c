package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/designable/internal/event/topic"
)

// Event is an immutable event carrying a typed payload.
type Event[T any] struct {
	// Type is the hierarchical topic, e.g. "tree.node.created".
	Type topic.Topic

	// Payload is the event-specific data.
	Payload T

	// Metadata is attached to every event.
	Metadata Metadata
}

// Metadata contains standard event information.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source names the publishing component.
	Source string

	// CausationID links to the event that caused this one.
	CausationID string
}

// NewEvent creates an event with fresh metadata.
func NewEvent[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic implements TopicProvider.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// EventMetadata implements MetadataProvider.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// WithCausation returns a copy linked to the event that caused it.
func (e Event[T]) WithCausation(causationID string) Event[T] {
	e.Metadata.CausationID = causationID
	return e
}

// TopicProvider is implemented by anything the bus can route.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// MetadataProvider is implemented by events carrying metadata.
type MetadataProvider interface {
	EventMetadata() Metadata
}
