package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification into an Event.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Vim-style <...> notation
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"))
	}

	// Modifier+key notation. A lone "+" is the plus key.
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(strings.Split(spec, "+"))
	}

	return parseKey(spec, ModNone)
}

// parseParts treats every part but the last as a modifier.
func parseParts(parts []string) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}

	lower := strings.ToLower(name)
	if k, ok := keyAliases[lower]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeAliases[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}

	runes := []rune(name)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse parses a key specification and panics on error. Use only for
// known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// NormalizeSpec parses and re-formats a specification in canonical form.
func NormalizeSpec(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.Spec(), nil
}
