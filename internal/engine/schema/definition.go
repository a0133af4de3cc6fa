package schema

import (
	"maps"

	"github.com/dshills/paper/internal/engine/block"
)

// Definition describes a block type.
type Definition struct {
	// Type is the tag stored on blocks of this type.
	Type block.Type

	// Label is a human readable name. Defaults to the type tag.
	Label string

	// Marker is the prefix an adapter draws in front of the block.
	Marker string

	// HasText is true for text-bearing types. Structural types carry no text.
	HasText bool

	// Continuation controls splitting. When nil or true, the tail of a split
	// keeps this type; when false it falls back to the default type.
	Continuation *bool

	// Default marks the fallback paragraph type of a registry.
	Default bool

	// Attrs declares the type-specific attributes and their default values.
	// Attributes not declared here are dropped when a block is created or
	// converted into this type.
	Attrs block.Attrs
}

// IsContinuation reports whether splitting a block of this type yields
// another block of the same type.
func (d *Definition) IsContinuation() bool {
	return d.Continuation == nil || *d.Continuation
}

// DisplayLabel returns the label, falling back to the type tag.
func (d *Definition) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return string(d.Type)
}

// Accepts reports whether key is a declared attribute of this type.
func (d *Definition) Accepts(key string) bool {
	_, ok := d.Attrs[key]
	return ok
}

// CreateBlock builds a block of this type from the given fields. Declared
// attributes start at their defaults and are overridden by fields.Attrs;
// undeclared attributes are discarded. A fresh ID is assigned unless
// fields.ID is set.
func (d *Definition) CreateBlock(fields Fields) block.Block {
	b := block.Block{
		ID:   fields.ID,
		Type: d.Type,
	}
	if b.ID.IsZero() {
		b.ID = block.NewID()
	}
	if fields.Indent != nil {
		b.Indent = block.ClampIndent(*fields.Indent)
	}
	if d.HasText {
		if fields.Text != nil {
			b.Text = block.StringPtr(*fields.Text)
		} else {
			b.Text = block.StringPtr("")
		}
	}
	if len(d.Attrs) > 0 {
		b.Attrs = maps.Clone(d.Attrs)
		for k, v := range fields.Attrs {
			if d.Accepts(k) {
				b.Attrs[k] = v
			}
		}
	}
	return b
}

// Bool returns a pointer to v, for use with Definition.Continuation.
func Bool(v bool) *bool {
	return &v
}
