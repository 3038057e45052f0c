package keyboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func press(t *testing.T, bus *event.Bus, spec string) {
	t.Helper()
	ev := key.MustParse(spec)
	require.NoError(t, event.Publish(context.Background(), bus, events.KeyDown, events.KeyDownPayload{Event: ev}, "test"))
}

func TestShortcutTriggersOnBus(t *testing.T) {
	bus := event.NewBus()
	ran := 0
	kb, err := New(Config{
		Bus: bus,
		Shortcuts: []Shortcut{
			{Name: "delete", Keys: []string{"Delete"}, Handler: func(ctx context.Context) error { ran++; return nil }},
			{Name: "redo", Keys: []string{"Ctrl+Shift+Z"}},
		},
	})
	require.NoError(t, err)

	var names []string
	_, _ = event.Listen(bus, events.ShortcutTriggered, func(ctx context.Context, e event.Event[events.ShortcutTriggeredPayload]) error {
		names = append(names, e.Payload.Name)
		return nil
	})

	press(t, bus, "Delete")
	press(t, bus, "x")
	// Terminals report Ctrl+Shift+z as Ctrl with an uppercase rune.
	require.NoError(t, event.Publish(context.Background(), bus, events.KeyDown,
		events.KeyDownPayload{Event: key.NewRuneEvent('Z', key.ModCtrl)}, "test"))

	assert.Equal(t, []string{"delete", "redo"}, names)
	assert.Equal(t, 1, ran)
	assert.Equal(t, key.ModCtrl, kb.Modifiers())
}

func TestMultiChordSequence(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	kb, err := New(Config{
		Shortcuts:       []Shortcut{{Name: "save-all", Keys: []string{"Ctrl+K", "s"}}},
		SequenceTimeout: time.Second,
		Now:             c.now,
	})
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, _ := kb.Press(ctx, key.MustParse("Ctrl+K"))
	assert.False(t, ok)
	assert.Len(t, kb.Sequence(), 1)

	c.t = c.t.Add(500 * time.Millisecond)
	sc, ok, err := kb.Press(ctx, key.MustParse("s"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "save-all", sc.Name)
	assert.Empty(t, kb.Sequence())
}

func TestSequenceTimeout(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	kb, err := New(Config{
		Shortcuts: []Shortcut{{Name: "save-all", Keys: []string{"Ctrl+K", "s"}}},
		Now:       c.now,
	})
	require.NoError(t, err)
	ctx := context.Background()

	_, _, _ = kb.Press(ctx, key.MustParse("Ctrl+K"))
	c.t = c.t.Add(2 * DefaultSequenceTimeout)
	_, ok, _ := kb.Press(ctx, key.MustParse("s"))
	assert.False(t, ok)
}

func TestStrayKeyRestartsSequence(t *testing.T) {
	kb, err := New(Config{Shortcuts: []Shortcut{{Name: "go", Keys: []string{"g", "g"}}}})
	require.NoError(t, err)
	ctx := context.Background()

	_, _, _ = kb.Press(ctx, key.MustParse("g"))
	_, _, _ = kb.Press(ctx, key.MustParse("x"))
	assert.Empty(t, kb.Sequence())

	_, _, _ = kb.Press(ctx, key.MustParse("g"))
	_, ok, _ := kb.Press(ctx, key.MustParse("g"))
	assert.True(t, ok)
}

func TestHandlerErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	kb, err := New(Config{Shortcuts: []Shortcut{{
		Name: "fail", Keys: []string{"F5"},
		Handler: func(ctx context.Context) error { return boom },
	}}})
	require.NoError(t, err)

	_, ok, err := kb.Press(context.Background(), key.MustParse("F5"))
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestInvalidShortcuts(t *testing.T) {
	_, err := New(Config{Shortcuts: []Shortcut{{Name: "bad", Keys: []string{"Hyper+x"}}}})
	assert.ErrorIs(t, err, key.ErrInvalidSpec)

	_, err = New(Config{Shortcuts: []Shortcut{{Name: "empty"}}})
	assert.ErrorIs(t, err, key.ErrEmptySpec)
}

func TestPointerUpdatesModifiers(t *testing.T) {
	bus := event.NewBus()
	kb, err := New(Config{Bus: bus})
	require.NoError(t, err)

	require.NoError(t, event.Publish(context.Background(), bus, events.PointerDown,
		events.PointerPayload{Button: events.ButtonPrimary, Modifiers: key.ModShift}, "test"))
	assert.Equal(t, key.ModShift, kb.Modifiers())

	kb.Reset()
	assert.Equal(t, key.ModNone, kb.Modifiers())

	kb.Close()
	assert.Equal(t, 0, bus.Stats().ActiveSubscriptions)
}
