// Package block defines the unit entity of a paper document.
//
// A document is a flat, ordered sequence of blocks. Nesting is not stored as
// parent/child pointers: every block carries an indentation depth, and the
// hierarchy is reconstructed from the order of the sequence and the depth of
// each block (see paper.Group).
package block

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/google/uuid"
)

// Indentation bounds. Every block's indent lies in [MinIndent, MaxIndent].
const (
	MinIndent = 0
	MaxIndent = 8
)

// ID uniquely identifies a block for its whole lifetime.
// IDs are never reused.
type ID string

// NewID returns a fresh random block ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// String returns the ID as a string.
func (id ID) String() string {
	return string(id)
}

// IsZero returns true if the ID is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// Type is the tag that selects a block's schema definition.
type Type string

// String returns the type tag.
func (t Type) String() string {
	return string(t)
}

// Attrs holds type-specific attributes that the core treats as opaque.
type Attrs map[string]any

// Clone returns a shallow copy of the attribute map.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Block is a single entry of the document sequence.
type Block struct {
	// ID is the block's stable identifier.
	ID ID

	// Type selects the block's schema definition.
	Type Type

	// Indent is the nesting depth, always within [MinIndent, MaxIndent].
	Indent int

	// Text is the block's text. Nil for structural block types that
	// hold no text.
	Text *string

	// Attrs carries type-specific attributes.
	Attrs Attrs
}

// New creates a text-bearing block with a fresh ID.
func New(t Type, text string, indent int) Block {
	return Block{
		ID:     NewID(),
		Type:   t,
		Indent: ClampIndent(indent),
		Text:   StringPtr(text),
	}
}

// NewStructural creates a block without text with a fresh ID.
func NewStructural(t Type, indent int) Block {
	return Block{
		ID:     NewID(),
		Type:   t,
		Indent: ClampIndent(indent),
	}
}

// HasText returns true if the block carries text.
func (b Block) HasText() bool {
	return b.Text != nil
}

// TextValue returns the block text, or "" for structural blocks.
func (b Block) TextValue() string {
	if b.Text == nil {
		return ""
	}
	return *b.Text
}

// WithText returns a copy of the block with its text replaced.
func (b Block) WithText(text string) Block {
	c := b.Clone()
	c.Text = StringPtr(text)
	return c
}

// WithIndent returns a copy of the block with a clamped indent.
func (b Block) WithIndent(indent int) Block {
	c := b.Clone()
	c.Indent = ClampIndent(indent)
	return c
}

// Attr returns a type-specific attribute.
func (b Block) Attr(key string) (any, bool) {
	if b.Attrs == nil {
		return nil, false
	}
	v, ok := b.Attrs[key]
	return v, ok
}

// Clone returns a copy of the block that shares no mutable state with b.
func (b Block) Clone() Block {
	c := b
	if b.Text != nil {
		c.Text = StringPtr(*b.Text)
	}
	c.Attrs = b.Attrs.Clone()
	return c
}

// Equal reports whether b and o hold the same ID, type, indent, text and
// attributes.
func (b Block) Equal(o Block) bool {
	if b.ID != o.ID || b.Type != o.Type || b.Indent != o.Indent {
		return false
	}
	if (b.Text == nil) != (o.Text == nil) || b.TextValue() != o.TextValue() {
		return false
	}
	if len(b.Attrs) != len(o.Attrs) {
		return false
	}
	return len(b.Attrs) == 0 || reflect.DeepEqual(b.Attrs, o.Attrs)
}

// String returns a compact debug representation.
func (b Block) String() string {
	if b.Text == nil {
		return fmt.Sprintf("%s[%s indent=%d]", b.ID, b.Type, b.Indent)
	}
	return fmt.Sprintf("%s[%s indent=%d %q]", b.ID, b.Type, b.Indent, *b.Text)
}

// ClampIndent limits an indentation depth to [MinIndent, MaxIndent].
func ClampIndent(indent int) int {
	return min(max(indent, MinIndent), MaxIndent)
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
