package events

import (
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/topic"
	"github.com/dshills/designable/internal/input/key"
)

// Input event topics. These are published by the input drivers attached to
// the global input surface.
const (
	TopicPointerDown   topic.Topic = "input.pointer.down"
	TopicPointerMove   topic.Topic = "input.pointer.move"
	TopicPointerUp     topic.Topic = "input.pointer.up"
	TopicKeyDown       topic.Topic = "input.key.down"
	TopicScreenResized topic.Topic = "input.screen.resized"
)

// Button identifies a pointer button.
type Button uint8

// Pointer buttons.
const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerPayload is a normalized pointer event in surface cells.
type PointerPayload struct {
	X, Y      int
	Button    Button
	Modifiers key.Modifier
}

// KeyDownPayload is a normalized key press.
type KeyDownPayload struct {
	Event key.Event
}

// ScreenResizedPayload carries the new surface size.
type ScreenResizedPayload struct {
	Width, Height int
}

// Input event kinds.
var (
	PointerDown   = event.NewKind[PointerPayload](TopicPointerDown)
	PointerMove   = event.NewKind[PointerPayload](TopicPointerMove)
	PointerUp     = event.NewKind[PointerPayload](TopicPointerUp)
	KeyDown       = event.NewKind[KeyDownPayload](TopicKeyDown)
	ScreenResized = event.NewKind[ScreenResizedPayload](TopicScreenResized)
)
