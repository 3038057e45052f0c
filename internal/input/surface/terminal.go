// Package surface adapts a tcell screen into the designer's global input
// surface.
//
// A Terminal owns the application loop: Run polls the screen and hands every
// event to the registered listeners on the loop goroutine. Other goroutines
// never call into listeners directly; they Post events or schedule work
// with Do, and the loop picks them up in order.
package surface

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// ErrStopped is returned by Post and Do after the loop has stopped.
var ErrStopped = errors.New("terminal loop stopped")

// stopSignal is posted as interrupt data to end Run.
type stopSignal struct{}

// task is posted as interrupt data to run fn on the loop.
type task struct{ fn func() }

type listener struct {
	id int
	fn func(raw any)
}

// Terminal is a tcell-backed input surface.
type Terminal struct {
	screen tcell.Screen
	logger *zap.Logger

	mu        sync.Mutex
	nextID    int
	listeners []listener
	stopped   bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTerminal wraps screen. The screen is not initialized until Init.
func NewTerminal(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{screen: screen, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Open creates a terminal on the process's tty.
func Open(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminal(screen, opts...), nil
}

// Init initializes the screen with mouse and paste reporting enabled.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	return nil
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Listen registers fn for every event the loop receives and returns a
// function that removes it. The returned function is idempotent.
func (t *Terminal) Listen(fn func(raw any)) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners = append(t.listeners, listener{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			t.listeners = slices.DeleteFunc(t.listeners, func(l listener) bool { return l.id == id })
			t.mu.Unlock()
		})
	}
}

// ListenerCount returns the number of registered listeners.
func (t *Terminal) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// Dispatch delivers ev to a snapshot of the listeners, in registration
// order.
func (t *Terminal) Dispatch(ev tcell.Event) {
	t.mu.Lock()
	snapshot := slices.Clone(t.listeners)
	t.mu.Unlock()

	for _, l := range snapshot {
		l.fn(ev)
	}
}

// Post queues ev for the loop. It is safe to call from any goroutine.
func (t *Terminal) Post(ev tcell.Event) error {
	if t.isStopped() {
		return ErrStopped
	}
	return t.screen.PostEvent(ev)
}

// Do schedules fn to run on the loop goroutine.
func (t *Terminal) Do(fn func()) error {
	return t.Post(tcell.NewEventInterrupt(task{fn: fn}))
}

// Stop asks Run to return after the events already queued.
func (t *Terminal) Stop() {
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(stopSignal{})); err != nil {
		t.logger.Warn("stop signal not queued", zap.Error(err))
	}
}

// Run polls the screen and dispatches events until Stop is called, ctx is
// done or the screen is finalized. Run returns ctx.Err() when the context
// ended the loop.
func (t *Terminal) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.Stop()
		case <-done:
		}
	}()

	defer func() {
		t.mu.Lock()
		t.stopped = true
		t.mu.Unlock()
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}

		if irq, ok := ev.(*tcell.EventInterrupt); ok {
			switch data := irq.Data().(type) {
			case stopSignal:
				return ctx.Err()
			case task:
				data.fn()
				continue
			}
		}
		t.Dispatch(ev)
	}
}

// Close finalizes the screen.
func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
