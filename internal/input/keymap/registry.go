package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/paper/internal/input/key"
)

// ErrNilKeymap is returned when registering a nil keymap.
var ErrNilKeymap = errors.New("cannot register nil keymap")

type layer struct {
	keymap   *Keymap
	bindings map[string]parsed
	order    int
}

// Registry layers keymaps and resolves key events to bindings.
type Registry struct {
	mu     sync.RWMutex
	layers map[string]*layer
	// sorted is rebuilt on every change: highest priority first, later
	// registration first among equals.
	sorted []*layer
	seq    int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{layers: make(map[string]*layer)}
}

// Register adds a keymap. A keymap with the same name is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}
	bindings, err := km.parse()
	if err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.layers[km.Name] = &layer{keymap: km.Clone(), bindings: bindings, order: r.seq}
	r.resort()
	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.layers, name)
	r.resort()
}

// Get returns a copy of a registered keymap.
func (r *Registry) Get(name string) (*Keymap, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.layers[name]
	if !ok {
		return nil, false
	}
	return l.keymap.Clone(), true
}

func (r *Registry) resort() {
	r.sorted = r.sorted[:0]
	for _, l := range r.layers {
		r.sorted = append(r.sorted, l)
	}
	sort.Slice(r.sorted, func(i, j int) bool {
		a, b := r.sorted[i], r.sorted[j]
		if a.keymap.Priority != b.keymap.Priority {
			return a.keymap.Priority > b.keymap.Priority
		}
		return a.order > b.order
	})
}

// Lookup returns the effective binding for a key event. A mask in a
// higher layer hides the key entirely.
func (r *Registry) Lookup(ev key.Event) (Binding, bool) {
	return r.LookupSpec(ev.Spec())
}

// LookupSpec is Lookup for a canonical key specification.
func (r *Registry) LookupSpec(spec string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.sorted {
		if p, ok := l.bindings[spec]; ok {
			if p.IsMask() {
				return Binding{}, false
			}
			return p.Binding.clone(), true
		}
	}
	return Binding{}, false
}

// KeysFor returns the canonical specs currently bound to an action,
// sorted.
func (r *Registry) KeysFor(action string) []string {
	var out []string
	for spec, b := range r.Effective() {
		if b.Action == action {
			out = append(out, spec)
		}
	}
	sort.Strings(out)
	return out
}

// Effective returns every bound key with the binding that wins for it.
func (r *Registry) Effective() map[string]Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Binding)
	seen := make(map[string]bool)
	for _, l := range r.sorted {
		for spec, p := range l.bindings {
			if seen[spec] {
				continue
			}
			seen[spec] = true
			if !p.IsMask() {
				out[spec] = p.Binding.clone()
			}
		}
	}
	return out
}
