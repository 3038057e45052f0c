package event

import (
	"context"
	"errors"
	"testing"
)

type otherPayload struct {
	S string
}

func TestKindPublishListen(t *testing.T) {
	b := NewBus()
	k := NewKind[payload]("thing.happened")

	var got []int
	sub, err := Listen(b, k, func(ctx context.Context, e Event[payload]) error {
		got = append(got, e.Payload.N)
		if e.Metadata.Source != "src" || e.Metadata.ID == "" {
			t.Errorf("unexpected metadata %+v", e.Metadata)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Listen error: %v", err)
	}

	if err := Publish(context.Background(), b, k, payload{N: 7}, "src"); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	sub.Dispose()
	_ = Publish(context.Background(), b, k, payload{N: 8}, "src")

	if len(got) != 1 || got[0] != 7 {
		t.Errorf("got = %v, want [7]", got)
	}
}

func TestTypedHandlerIgnoresOtherPayloads(t *testing.T) {
	b := NewBus()
	k := NewKind[payload]("shared")

	calls := 0
	_, _ = Listen(b, k, func(ctx context.Context, e Event[payload]) error {
		calls++
		return nil
	})

	// Same topic, different payload type: never reaches the typed handler.
	_ = b.Emit(context.Background(), NewEvent("shared", otherPayload{S: "x"}, "test"))
	if calls != 0 {
		t.Errorf("typed handler received a foreign payload")
	}
}

func TestListenNilHandler(t *testing.T) {
	b := NewBus()
	if _, err := Listen[payload](b, NewKind[payload]("a"), nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("Listen(nil) error = %v, want ErrNilHandler", err)
	}
}

func TestEventWithCausation(t *testing.T) {
	parent := NewEvent("a", payload{}, "p")
	child := NewKind[payload]("b").New(payload{N: 1}, "c").WithCausation(parent.Metadata.ID)

	if child.EventMetadata().CausationID != parent.Metadata.ID {
		t.Errorf("CausationID = %q, want %q", child.Metadata.CausationID, parent.Metadata.ID)
	}
	if child.EventTopic() != "b" {
		t.Errorf("EventTopic = %q", child.EventTopic())
	}
}
