package event

import "context"

// Priority determines handler execution order. Lower values run first;
// equal priorities run in registration order.
type Priority int

const (
	// PriorityCritical is for core state owners (tree, operations, cursor).
	PriorityCritical Priority = 0

	// PriorityHigh is for collaborators that derive state (keyboard, screen).
	PriorityHigh Priority = 100

	// PriorityNormal is the default, used by effects and renderers.
	PriorityNormal Priority = 200

	// PriorityLow is for metrics and logging handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler processes an event. The event is type-erased; typed handlers are
// adapted with AsHandler.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandlerFunc handles events carrying a payload of type T.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// AsHandler adapts a typed handler. Events of another payload type are
// ignored.
func AsHandler[T any](fn TypedHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return fn(ctx, e)
		}
		return nil
	})
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// Disposer removes whatever registration returned it. Calling it more than
// once is a no-op.
type Disposer func()

// Stats contains bus counters.
type Stats struct {
	// EventsEmitted is the number of events accepted by Emit.
	EventsEmitted uint64

	// HandlersExecuted is the number of handler invocations.
	HandlersExecuted uint64

	// HandlerErrors is the number of handlers that returned an error.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscriptions is the current number of active subscriptions.
	ActiveSubscriptions int

	// AttachedListeners is the number of live listeners on an external source.
	AttachedListeners int
}
