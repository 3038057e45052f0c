package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification into an Event.
//
// Supported forms: "a", "Delete", "Ctrl+S", "Ctrl+Shift+Z", "<C-s>",
// "<C-S-z>", "<Esc>".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), spec, false)
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(strings.Split(spec, "+"), spec, true)
	}
	return parseKey(spec, ModNone, spec, false)
}

// MustParse is Parse for static tables; it panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

// In the "+" notation letters are case-insensitive: "Ctrl+Z" is Ctrl+z and
// Shift must be spelled out.
func parseParts(parts []string, spec string, foldCase bool) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods, spec, foldCase)
}

func parseKey(part string, mods Modifier, spec string, foldCase bool) (Event, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Event{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}

	switch strings.ToLower(part) {
	case "space":
		return NewRuneEvent(' ', mods).Normalize(), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "plus":
		return NewRuneEvent('+', mods), nil
	}

	if k := FromName(part); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(part)
	if len(runes) == 1 {
		if foldCase {
			runes[0] = unicode.ToLower(runes[0])
		}
		return NewRuneEvent(runes[0], mods).Normalize(), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}
