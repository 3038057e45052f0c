// Package keyboard tracks modifier state and matches key sequences against
// the designer's shortcut table.
package keyboard

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
)

// DefaultSequenceTimeout is the longest pause allowed between the chords of
// a multi-chord shortcut.
const DefaultSequenceTimeout = time.Second

// Shortcut binds a key sequence to a name and an optional action.
type Shortcut struct {
	// Name identifies the shortcut in keyboard.shortcut events.
	Name string

	// Keys is the chord sequence, e.g. ["Ctrl+K", "Ctrl+S"] or ["Delete"].
	Keys []string

	// Handler runs when the sequence completes. Optional.
	Handler func(ctx context.Context) error
}

type binding struct {
	shortcut Shortcut
	sequence []key.Event
}

// Config configures a Keyboard.
type Config struct {
	Bus             *event.Bus
	Shortcuts       []Shortcut
	SequenceTimeout time.Duration
	Logger          *zap.Logger

	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Keyboard is the designer's keyboard collaborator.
type Keyboard struct {
	bus      *event.Bus
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
	bindings []binding

	modifiers key.Modifier
	sequence  []key.Event
	lastPress time.Time
	subs      []event.Subscription
}

// New parses the shortcut table and subscribes to key and pointer events.
func New(cfg Config) (*Keyboard, error) {
	if cfg.SequenceTimeout <= 0 {
		cfg.SequenceTimeout = DefaultSequenceTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	k := &Keyboard{
		bus:     cfg.Bus,
		logger:  cfg.Logger,
		timeout: cfg.SequenceTimeout,
		now:     cfg.Now,
	}
	for _, sc := range cfg.Shortcuts {
		if err := k.AddShortcut(sc); err != nil {
			return nil, err
		}
	}
	if k.bus == nil {
		return k, nil
	}

	opts := []event.SubscriptionOption{event.WithPriority(event.PriorityHigh)}
	sub, err := event.Listen(k.bus, events.KeyDown, k.onKeyDown, opts...)
	if err != nil {
		return nil, err
	}
	k.subs = append(k.subs, sub)
	sub, err = event.Listen(k.bus, events.PointerDown, k.onPointer, opts...)
	if err != nil {
		k.Close()
		return nil, err
	}
	k.subs = append(k.subs, sub)
	return k, nil
}

// AddShortcut parses and appends a shortcut.
func (k *Keyboard) AddShortcut(sc Shortcut) error {
	if sc.Name == "" || len(sc.Keys) == 0 {
		return fmt.Errorf("shortcut %q: %w", sc.Name, key.ErrEmptySpec)
	}
	seq := make([]key.Event, 0, len(sc.Keys))
	for _, spec := range sc.Keys {
		ev, err := key.Parse(spec)
		if err != nil {
			return fmt.Errorf("shortcut %q: %w", sc.Name, err)
		}
		seq = append(seq, ev)
	}
	k.bindings = append(k.bindings, binding{shortcut: sc, sequence: seq})
	return nil
}

// Shortcuts returns the configured shortcuts in order.
func (k *Keyboard) Shortcuts() []Shortcut {
	out := make([]Shortcut, len(k.bindings))
	for i, b := range k.bindings {
		out[i] = b.shortcut
	}
	return out
}

// Modifiers returns the modifiers held during the last key or pointer
// press.
func (k *Keyboard) Modifiers() key.Modifier {
	return k.modifiers
}

// Sequence returns the pending chords of an incomplete shortcut.
func (k *Keyboard) Sequence() []key.Event {
	return slices.Clone(k.sequence)
}

// Press feeds one key press and returns the shortcut it completed, if any.
func (k *Keyboard) Press(ctx context.Context, ev key.Event) (Shortcut, bool, error) {
	now := k.now()
	if len(k.sequence) > 0 && now.Sub(k.lastPress) > k.timeout {
		k.sequence = nil
	}
	k.lastPress = now
	k.modifiers = ev.Modifiers
	k.sequence = append(k.sequence, ev)

	for {
		b, complete, prefix := k.match()
		if complete {
			k.sequence = nil
			return b.shortcut, true, k.trigger(ctx, b)
		}
		if prefix || len(k.sequence) == 0 {
			return Shortcut{}, false, nil
		}
		// Drop the oldest chord and retry so that a stray key does not
		// block the start of a new sequence.
		k.sequence = k.sequence[1:]
	}
}

// Reset clears pending chords and held modifiers.
func (k *Keyboard) Reset() {
	k.sequence = nil
	k.modifiers = key.ModNone
}

// Close unsubscribes from the bus.
func (k *Keyboard) Close() {
	for _, sub := range k.subs {
		sub.Dispose()
	}
	k.subs = nil
}

// match reports the first binding equal to the pending sequence, and
// whether the sequence is a prefix of any longer binding.
func (k *Keyboard) match() (binding, bool, bool) {
	prefix := false
	for _, b := range k.bindings {
		if len(b.sequence) < len(k.sequence) {
			continue
		}
		if !chordsMatch(b.sequence[:len(k.sequence)], k.sequence) {
			continue
		}
		if len(b.sequence) == len(k.sequence) {
			return b, true, false
		}
		prefix = true
	}
	return binding{}, false, prefix
}

func chordsMatch(want, got []key.Event) bool {
	for i := range want {
		if !want[i].Matches(got[i]) {
			return false
		}
	}
	return true
}

func (k *Keyboard) trigger(ctx context.Context, b binding) error {
	keys := strings.Join(b.shortcut.Keys, " ")
	k.logger.Debug("shortcut", zap.String("name", b.shortcut.Name), zap.String("keys", keys))

	if k.bus != nil {
		err := event.Publish(ctx, k.bus, events.ShortcutTriggered, events.ShortcutTriggeredPayload{
			Name: b.shortcut.Name,
			Keys: keys,
		}, "keyboard")
		if err != nil {
			k.logger.Debug("shortcut event not delivered", zap.Error(err))
		}
	}
	if b.shortcut.Handler == nil {
		return nil
	}
	if err := b.shortcut.Handler(ctx); err != nil {
		return fmt.Errorf("shortcut %q: %w", b.shortcut.Name, err)
	}
	return nil
}

func (k *Keyboard) onKeyDown(ctx context.Context, e event.Event[events.KeyDownPayload]) error {
	_, _, err := k.Press(ctx, e.Payload.Event)
	return err
}

func (k *Keyboard) onPointer(ctx context.Context, e event.Event[events.PointerPayload]) error {
	k.modifiers = e.Payload.Modifiers
	return nil
}
