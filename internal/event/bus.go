package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event/dispatch"
	"github.com/dshills/designable/internal/event/topic"
)

// Bus is the synchronous publish/subscribe hub shared by a designer's
// components. It is safe for concurrent use, although the designer drives it
// from a single goroutine.
type Bus struct {
	registry *Registry
	executor *dispatch.Executor
	config   busConfig
	seq      atomic.Uint64

	attachMu  sync.Mutex
	source    Source
	listeners []func()

	eventsEmitted    atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates a bus.
func NewBus(opts ...BusOption) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bus{
		registry: NewRegistry(),
		executor: dispatch.NewExecutor(),
		config:   cfg,
	}
	if b.config.reporter == nil {
		b.config.reporter = b.logFailure
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), b.seq.Add(1), pattern, handler, b.registry.Remove, opts...)
	b.registry.Add(sub)
	return sub, nil
}

// SubscribeFunc is Subscribe for a plain function.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// On registers fn and returns a disposer that removes it.
func (b *Bus) On(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Disposer, error) {
	sub, err := b.SubscribeFunc(pattern, fn, opts...)
	if err != nil {
		return nil, err
	}
	return sub.Dispose, nil
}

// Off removes a subscription.
func (b *Bus) Off(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	if sub.State() == SubscriptionStateDisposed {
		return ErrSubscriptionNotFound
	}
	sub.Dispose()
	return nil
}

// Emit delivers event to every matching handler before returning. Handler
// failures are isolated and reported; with WithFailFast the first one is
// also returned.
func (b *Bus) Emit(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()
	if !eventTopic.IsValid() || eventTopic.IsWildcard() {
		return ErrInvalidEvent
	}

	b.eventsEmitted.Add(1)

	subs := b.registry.Match(eventTopic)
	var first error
	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}

		result := b.executor.Execute(ctx, event, sub.handler)
		if result.Skipped {
			if first == nil && b.config.failFast {
				first = result.Error
			}
			break
		}
		b.handlersExecuted.Add(1)

		var failure error
		switch {
		case result.Panicked:
			b.handlerPanics.Add(1)
			failure = &PanicError{
				SubscriptionID: sub.id,
				Topic:          eventTopic.String(),
				Value:          result.PanicValue,
				Stack:          string(result.PanicStack),
			}
		case result.Error != nil:
			b.handlerErrors.Add(1)
			failure = &HandlerError{
				SubscriptionID: sub.id,
				Topic:          eventTopic.String(),
				Err:            result.Error,
			}
		}

		if failure != nil {
			b.config.reporter(failure)
			if first == nil && b.config.failFast {
				first = failure
			}
			continue
		}

		if sub.config.Once {
			sub.Dispose()
		}
	}
	return first
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsEmitted:       b.eventsEmitted.Load(),
		HandlersExecuted:    b.handlersExecuted.Load(),
		HandlerErrors:       b.handlerErrors.Load(),
		HandlerPanics:       b.handlerPanics.Load(),
		ActiveSubscriptions: b.registry.CountActive(),
		AttachedListeners:   b.AttachedCount(),
	}
}

// Clear disposes every subscription and detaches from any source.
func (b *Bus) Clear() {
	b.DetachEvents()
	b.registry.Clear()
}

func (b *Bus) logFailure(err error) {
	var perr *PanicError
	if errors.As(err, &perr) {
		b.config.logger.Error("event handler panicked",
			zap.String("topic", perr.Topic),
			zap.String("subscription", perr.SubscriptionID),
			zap.Any("value", perr.Value),
			zap.String("stack", perr.Stack),
		)
		return
	}

	var herr *HandlerError
	if errors.As(err, &herr) {
		b.config.logger.Warn("event handler failed",
			zap.String("topic", herr.Topic),
			zap.String("subscription", herr.SubscriptionID),
			zap.Error(herr.Err),
		)
		return
	}

	b.config.logger.Warn("event handler failed", zap.Error(err))
}
