package keymap

import (
	"fmt"

	"github.com/dshills/paper/internal/input/key"
)

// Standard keymap priorities. Higher priority wins.
const (
	PriorityDefault = 0
	PriorityScript  = 5
	PriorityUser    = 10
)

// Keymap holds a named layer of key bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps bind a key.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "config", "script"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// Mask adds a binding that unbinds keys in lower-priority keymaps.
func (k *Keymap) Mask(keys string) *Keymap {
	return k.Add(keys, "")
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that every binding has a parseable key specification.
func (k *Keymap) Validate() error {
	_, err := k.parse()
	return err
}

// parse resolves the bindings to canonical specs. Within one keymap a
// later binding for the same key replaces an earlier one.
func (k *Keymap) parse() (map[string]parsed, error) {
	out := make(map[string]parsed, len(k.Bindings))
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		spec := ev.Spec()
		out[spec] = parsed{Binding: b.clone(), spec: spec, event: ev}
	}
	return out, nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b.clone()
	}
	return clone
}
