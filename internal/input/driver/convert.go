package driver

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// Modifiers converts a tcell modifier mask.
func Modifiers(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// KeyEvent converts a tcell key event. Control characters such as Ctrl+A
// become the letter with ModCtrl. The second result is false for keys the
// designer has no name for.
func KeyEvent(ev *tcell.EventKey) (key.Event, bool) {
	mods := Modifiers(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyBacktab {
		mods = mods.With(key.ModShift)
	}
	if special, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(special, mods), true
	}

	switch {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods).Normalize(), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

// Button reports the primary, secondary or middle button held in b, in that
// order of preference. Wheel bits are ignored.
func Button(b tcell.ButtonMask) events.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return events.ButtonPrimary
	case b&tcell.ButtonSecondary != 0:
		return events.ButtonSecondary
	case b&tcell.ButtonMiddle != 0:
		return events.ButtonMiddle
	default:
		return events.ButtonNone
	}
}
