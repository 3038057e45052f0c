package event

import (
	"context"

	"github.com/dshills/designable/internal/event/topic"
)

// Kind pairs a concrete topic with its payload type. Components declare
// their event set as Kind values so that publishers and subscribers agree on
// the payload at compile time.
type Kind[T any] struct {
	Topic topic.Topic
}

// NewKind declares a kind for the given topic.
func NewKind[T any](t topic.Topic) Kind[T] {
	return Kind[T]{Topic: t}
}

// New builds an event of this kind.
func (k Kind[T]) New(payload T, source string) Event[T] {
	return NewEvent(k.Topic, payload, source)
}

// Publish emits a typed event on the bus.
func Publish[T any](ctx context.Context, b *Bus, k Kind[T], payload T, source string) error {
	return b.Emit(ctx, k.New(payload, source))
}

// Listen subscribes a typed handler to one kind.
func Listen[T any](b *Bus, k Kind[T], fn TypedHandlerFunc[T], opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(k.Topic, AsHandler(fn), opts...)
}
