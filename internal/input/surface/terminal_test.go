package surface

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T) *Terminal {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminal(sim)
	require.NoError(t, term.Init())
	t.Cleanup(term.Close)
	return term
}

func TestListenAndCancel(t *testing.T) {
	term := newSimTerminal(t)

	var got []string
	cancelA := term.Listen(func(raw any) { got = append(got, "a") })
	term.Listen(func(raw any) { got = append(got, "b") })
	assert.Equal(t, 2, term.ListenerCount())

	term.Dispatch(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []string{"a", "b"}, got)

	cancelA()
	cancelA()
	assert.Equal(t, 1, term.ListenerCount())

	got = nil
	term.Dispatch(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []string{"b"}, got)
}

func TestListenerMayCancelDuringDispatch(t *testing.T) {
	term := newSimTerminal(t)

	calls := 0
	var cancel func()
	cancel = term.Listen(func(raw any) {
		calls++
		cancel()
	})
	term.Listen(func(raw any) { calls++ })

	term.Dispatch(tcell.NewEventResize(80, 24))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, term.ListenerCount())
}

func TestRunDispatchesPostedEvents(t *testing.T) {
	term := newSimTerminal(t)

	received := make(chan tcell.Event, 8)
	term.Listen(func(raw any) {
		if ev, ok := raw.(*tcell.EventKey); ok {
			received <- ev
		}
	})

	errc := make(chan error, 1)
	go func() { errc <- term.Run(context.Background()) }()

	require.NoError(t, term.Post(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	select {
	case ev := <-received:
		assert.Equal(t, 'x', ev.(*tcell.EventKey).Rune())
	case <-time.After(2 * time.Second):
		t.Fatal("posted key was not dispatched")
	}

	term.Stop()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.True(t, errors.Is(term.Post(tcell.NewEventResize(1, 1)), ErrStopped))
}

func TestDoRunsOnLoop(t *testing.T) {
	term := newSimTerminal(t)

	ran := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- term.Run(ctx) }()

	require.NoError(t, term.Do(func() { close(ran) }))
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
