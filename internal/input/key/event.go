package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers are the modifiers held during the press.
	Modifiers Modifier
}

// NewRuneEvent creates a character event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether this is a character event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Normalize folds case and implied Shift so that "Ctrl+Z", "<C-S-z>" and a
// terminal's Ctrl+Shift+z press compare equal.
func (e Event) Normalize() Event {
	if !e.IsRune() {
		return e
	}
	if unicode.IsUpper(e.Rune) {
		e.Modifiers = e.Modifiers.With(ModShift)
	}
	e.Rune = unicode.ToLower(e.Rune)
	return e
}

// Matches reports whether two events denote the same chord.
func (e Event) Matches(other Event) bool {
	a, b := e.Normalize(), other.Normalize()
	return a.Key == b.Key && a.Rune == b.Rune && a.Modifiers == b.Modifiers
}

// String returns the chord in "Ctrl+Shift+Z" form.
func (e Event) String() string {
	var parts []string
	if mods := e.Modifiers.String(); mods != "" {
		parts = append(parts, mods)
	}
	switch {
	case e.IsRune() && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.IsRune():
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "+")
}
