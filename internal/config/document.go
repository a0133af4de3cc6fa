package config

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/schema"
)

// Sequence builds the configured initial document. Blocks without a type
// use the registry's default type. It returns nil when no blocks are
// configured.
func (c *Config) Sequence(reg *schema.Registry) (block.Sequence, error) {
	if len(c.Document.Blocks) == 0 {
		return nil, nil
	}

	seq := make(block.Sequence, 0, len(c.Document.Blocks))
	for i, bc := range c.Document.Blocks {
		t := block.Type(bc.Type)
		if t == "" {
			t = reg.DefaultSchema().Type
		}
		indent := bc.Indent
		b, err := reg.CreateBlock(t, schema.Fields{
			ID:     block.ID(bc.ID),
			Indent: &indent,
			Text:   bc.Text,
			Attrs:  block.Attrs(bc.Attrs),
		})
		if err != nil {
			return nil, fmt.Errorf("document.blocks[%d]: %w", i, err)
		}
		seq = append(seq, b)
	}
	return seq, nil
}
