package dispatch

import (
	"context"
	"time"
)

// Handler mirrors event.Handler to avoid an import cycle.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// Result is the outcome of one handler invocation.
type Result struct {
	// Success is true if the handler returned nil without panicking.
	Success bool

	// Error is the error returned by the handler, if any.
	Error error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the value passed to panic().
	PanicValue any

	// PanicStack is the stack trace captured at the panic.
	PanicStack []byte

	// Duration is how long the handler ran.
	Duration time.Duration

	// Skipped is true if the handler never ran because the context was done.
	Skipped bool
}

// IsSuccess reports whether the handler completed cleanly.
func (r Result) IsSuccess() bool {
	return r.Success && !r.Panicked && r.Error == nil
}

// IsError reports whether the handler returned an error (not a panic).
func (r Result) IsError() bool {
	return r.Error != nil && !r.Panicked && !r.Skipped
}

// IsPanic reports whether the handler panicked.
func (r Result) IsPanic() bool {
	return r.Panicked
}

// PanicHandler is called after a handler panic has been recovered.
type PanicHandler func(event any, panicValue any, stack []byte)

func defaultPanicHandler(any, any, []byte) {}
