package event

import (
	"sync/atomic"

	"github.com/dshills/designable/internal/event/topic"
)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription receives events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means delivery is temporarily suspended.
	SubscriptionStatePaused

	// SubscriptionStateDisposed means the subscription was removed for good.
	SubscriptionStateDisposed
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Subscription is a registered handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed pattern.
	Topic() topic.Topic

	// State returns the current state.
	State() SubscriptionState

	// IsActive reports whether the subscription receives events.
	IsActive() bool

	// Pause suspends delivery.
	Pause()

	// Resume restarts delivery after Pause.
	Resume()

	// Dispose removes the subscription from its bus. Idempotent.
	Dispose()
}

// SubscriptionConfig contains per-subscription settings.
type SubscriptionConfig struct {
	// Priority determines execution order (lower first).
	Priority Priority

	// Filter, when set, must return true for the event to be delivered.
	Filter FilterFunc

	// Once disposes the subscription after its first successful delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a delivery predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce disposes the subscription after the first successful delivery.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

type subscription struct {
	id      string
	seq     uint64
	topic   topic.Topic
	handler Handler
	config  SubscriptionConfig
	state   atomic.Int32
	remove  func(id string) bool
}

func newSubscription(id string, seq uint64, pattern topic.Topic, handler Handler, remove func(string) bool, opts ...SubscriptionOption) *subscription {
	cfg := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &subscription{
		id:      id,
		seq:     seq,
		topic:   pattern,
		handler: handler,
		config:  cfg,
		remove:  remove,
	}
}

func (s *subscription) ID() string { return s.id }
func (s *subscription) Topic() topic.Topic { return s.topic }
func (s *subscription) Handler() Handler { return s.handler }
func (s *subscription) Config() SubscriptionConfig { return s.config }

func (s *subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

func (s *subscription) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

func (s *subscription) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

func (s *subscription) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

func (s *subscription) Dispose() {
	if SubscriptionState(s.state.Swap(int32(SubscriptionStateDisposed))) == SubscriptionStateDisposed {
		return
	}
	if s.remove != nil {
		s.remove(s.id)
	}
}

// shouldDeliver applies the subscription filter.
func (s *subscription) shouldDeliver(event any) bool {
	if !s.IsActive() {
		return false
	}
	return s.config.Filter == nil || s.config.Filter(event)
}
