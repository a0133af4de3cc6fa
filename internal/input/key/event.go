package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers holds the active modifier keys. Shift is never set on
	// character events; it is already part of the character.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	mods = mods.Without(ModShift)
	if mods != ModNone {
		r = unicode.ToLower(r)
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true for character events.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsText returns true for an unmodified printable character, which the
// editor inserts into the focused block.
func (e Event) IsText() bool {
	return e.IsRune() && e.Modifiers == ModNone && unicode.IsPrint(e.Rune)
}

// Spec returns the canonical specification of the event, e.g. "a",
// "Ctrl+M", "Shift+Tab" or "Space".
func (e Event) Spec() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune && e.Rune == '+':
		name = "Plus"
	case e.Key == KeyRune && e.Modifiers != ModNone:
		name = strings.ToUpper(string(e.Rune))
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// String returns the canonical specification.
func (e Event) String() string {
	return e.Spec()
}

// Matches reports whether the event matches a specification.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return parsed == e
}
