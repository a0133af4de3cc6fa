// Package schema maps block type tags to block definitions.
//
// The registry is a pure lookup and factory service: it answers which
// definition belongs to a type, which type is the default paragraph type,
// and builds new blocks of a type from partial fields.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/dshills/paper/internal/engine/block"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 3

// Registry holds the block definitions available to a document.
type Registry struct {
	mu    sync.RWMutex
	defs  map[block.Type]*Definition
	order []block.Type
	deflt block.Type
}

// NewRegistry creates a registry from definitions. Exactly one definition
// must be marked Default.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs: make(map[block.Type]*Definition, len(defs)),
	}
	for _, d := range defs {
		if err := r.register(d); err != nil {
			return nil, err
		}
	}
	if r.deflt == "" {
		return nil, ErrNoDefault
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds a definition to the registry.
func (r *Registry) Register(d Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(d)
}

func (r *Registry) register(d Definition) error {
	if d.Type == "" {
		return fmt.Errorf("%w: empty type", ErrInvalidDefinition)
	}
	if _, ok := r.defs[d.Type]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateType, d.Type)
	}
	if d.Default {
		if r.deflt != "" {
			return fmt.Errorf("%w: %q and %q", ErrMultipleDefaults, r.deflt, d.Type)
		}
		r.deflt = d.Type
	}
	def := d
	def.Attrs = d.Attrs.Clone()
	r.defs[d.Type] = &def
	r.order = append(r.order, d.Type)
	return nil
}

// Find returns the definition for a type.
func (r *Registry) Find(t block.Type) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.defs[t]; ok {
		return d, nil
	}
	return nil, &UnknownTypeError{Type: t, Suggestion: r.suggestLocked(string(t))}
}

// Has reports whether a type is registered.
func (r *Registry) Has(t block.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[t]
	return ok
}

// DefaultSchema returns the default (paragraph) definition.
func (r *Registry) DefaultSchema() *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs[r.deflt]
}

// CreateBlock builds a block of type t from fields.
func (r *Registry) CreateBlock(t block.Type, fields Fields) (block.Block, error) {
	d, err := r.Find(t)
	if err != nil {
		return block.Block{}, err
	}
	return d.CreateBlock(fields), nil
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []block.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]block.Type, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions returns copies of the registered definitions in order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, *r.defs[t])
	}
	return out
}

// Suggest returns the registered type closest to name, or "" when nothing
// is close enough.
func (r *Registry) Suggest(name string) block.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.suggestLocked(name)
}

func (r *Registry) suggestLocked(name string) block.Type {
	matches := r.rankLocked(name)
	if len(matches) == 0 || matches[0].Distance > maxSuggestionDistance {
		return ""
	}
	return matches[0].Type
}

// Match is a type ranked against a query.
type Match struct {
	Type     block.Type
	Distance int
}

// Rank orders every registered type by similarity to query. Types whose
// tag or label starts with the query rank first.
func (r *Registry) Rank(query string) []Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rankLocked(query)
}

func (r *Registry) rankLocked(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]Match, 0, len(r.order))
	for _, t := range r.order {
		d := r.defs[t]
		dist := levenshtein.ComputeDistance(q, strings.ToLower(string(t)))
		if label := strings.ToLower(d.DisplayLabel()); label != string(t) {
			dist = min(dist, levenshtein.ComputeDistance(q, label))
		}
		if q != "" && (strings.HasPrefix(string(t), q) || strings.HasPrefix(strings.ToLower(d.DisplayLabel()), q)) {
			dist = 0
		}
		matches = append(matches, Match{Type: t, Distance: dist})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}
