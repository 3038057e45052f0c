package event

import (
	"context"

	"go.uber.org/zap"
)

// Source is an external dispatch surface, such as a terminal screen, whose
// native events the bus can re-emit.
type Source interface {
	// Listen registers fn for every raw event and returns a function that
	// removes the registration.
	Listen(fn func(raw any)) (cancel func())
}

// Driver translates the raw events of a Source into typed bus events.
type Driver interface {
	// Name identifies the driver in logs.
	Name() string

	// Translate returns the normalized event for raw, or false when raw is
	// not something this driver handles.
	Translate(raw any) (any, bool)
}

// DriverFunc adapts a function to Driver.
type DriverFunc struct {
	DriverName string
	Fn         func(raw any) (any, bool)
}

// Name implements Driver.
func (d DriverFunc) Name() string { return d.DriverName }

// Translate implements Driver.
func (d DriverFunc) Translate(raw any) (any, bool) { return d.Fn(raw) }

// passthrough re-emits raw events that already carry a topic.
var passthrough = DriverFunc{
	DriverName: "passthrough",
	Fn: func(raw any) (any, bool) {
		_, ok := raw.(TopicProvider)
		return raw, ok
	},
}

// AttachEvents subscribes one listener per driver to src. Each listener
// re-emits translated events through the bus. Without drivers, raw events
// that already implement TopicProvider are re-emitted unchanged. Attaching
// again first detaches the previous source.
func (b *Bus) AttachEvents(src Source, drivers ...Driver) error {
	if src == nil {
		return ErrNilSource
	}
	if len(drivers) == 0 {
		drivers = []Driver{passthrough}
	}

	b.DetachEvents()

	listeners := make([]func(), 0, len(drivers))
	for _, d := range drivers {
		cancel := src.Listen(func(raw any) {
			evt, ok := d.Translate(raw)
			if !ok {
				return
			}
			if err := b.Emit(context.Background(), evt); err != nil {
				b.config.logger.Debug("driver event not delivered",
					zap.String("driver", d.Name()),
					zap.Error(err),
				)
			}
		})
		listeners = append(listeners, cancel)
	}

	b.attachMu.Lock()
	b.source = src
	b.listeners = listeners
	b.attachMu.Unlock()
	return nil
}

// DetachEvents releases every listener registered by AttachEvents. It is
// idempotent and safe to call when nothing is attached.
func (b *Bus) DetachEvents() {
	b.attachMu.Lock()
	listeners := b.listeners
	b.listeners = nil
	b.source = nil
	b.attachMu.Unlock()

	for _, cancel := range listeners {
		if cancel != nil {
			cancel()
		}
	}
}

// Attached reports whether the bus is attached to a source.
func (b *Bus) Attached() bool {
	b.attachMu.Lock()
	defer b.attachMu.Unlock()
	return b.source != nil
}

// AttachedCount returns the number of live listeners on the attached source.
func (b *Bus) AttachedCount() int {
	b.attachMu.Lock()
	defer b.attachMu.Unlock()
	return len(b.listeners)
}
