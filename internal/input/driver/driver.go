// Package driver translates raw tcell events from the input surface into the
// designer's typed input events. Each driver handles one family of events
// and ignores the rest, so a surface can be attached with any subset.
package driver

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
)

// source names the origin of translated events in their metadata.
const source = "terminal"

// Defaults returns fresh instances of every driver.
func Defaults() []event.Driver {
	return []event.Driver{NewPointer(), Keyboard{}, Resize{}}
}

// Pointer turns tcell mouse reports into pointer down, move and up events.
// tcell reports the held buttons on every mouse event, so Pointer keeps the
// previous button to detect transitions. A Pointer must not be shared
// between surfaces.
type Pointer struct {
	held events.Button
}

// NewPointer creates a pointer driver with no button held.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Name implements event.Driver.
func (p *Pointer) Name() string { return "pointer" }

// Translate implements event.Driver.
func (p *Pointer) Translate(raw any) (any, bool) {
	ev, ok := raw.(*tcell.EventMouse)
	if !ok {
		return nil, false
	}

	x, y := ev.Position()
	button := Button(ev.Buttons())
	payload := events.PointerPayload{
		X:         x,
		Y:         y,
		Button:    button,
		Modifiers: Modifiers(ev.Modifiers()),
	}

	prev := p.held
	p.held = button
	switch {
	case prev == events.ButtonNone && button != events.ButtonNone:
		return events.PointerDown.New(payload, source), true
	case prev != events.ButtonNone && button == events.ButtonNone:
		payload.Button = prev
		return events.PointerUp.New(payload, source), true
	default:
		return events.PointerMove.New(payload, source), true
	}
}

// Keyboard turns tcell key events into key down events.
type Keyboard struct{}

// Name implements event.Driver.
func (Keyboard) Name() string { return "keyboard" }

// Translate implements event.Driver.
func (Keyboard) Translate(raw any) (any, bool) {
	ev, ok := raw.(*tcell.EventKey)
	if !ok {
		return nil, false
	}
	k, ok := KeyEvent(ev)
	if !ok {
		return nil, false
	}
	return events.KeyDown.New(events.KeyDownPayload{Event: k}, source), true
}

// Resize turns tcell resize events into screen resized events.
type Resize struct{}

// Name implements event.Driver.
func (Resize) Name() string { return "resize" }

// Translate implements event.Driver.
func (Resize) Translate(raw any) (any, bool) {
	ev, ok := raw.(*tcell.EventResize)
	if !ok {
		return nil, false
	}
	w, h := ev.Size()
	return events.ScreenResized.New(events.ScreenResizedPayload{Width: w, Height: h}, source), true
}
