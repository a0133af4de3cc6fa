package keymap

import (
	"maps"

	"github.com/dshills/paper/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification, e.g. "Ctrl+M" or "<S-Tab>".
	Keys string

	// Action is the dispatcher action to run.
	// Examples: "editor.enter", "block.indent", "script.sort"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// IsMask reports whether the binding unbinds its key.
func (b Binding) IsMask() bool {
	return b.Action == ""
}

func (b Binding) clone() Binding {
	if b.Args != nil {
		b.Args = maps.Clone(b.Args)
	}
	return b
}

// parsed is a binding keyed by its canonical specification.
type parsed struct {
	Binding
	spec  string
	event key.Event
}
