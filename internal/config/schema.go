package config

import (
	"fmt"
	"maps"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/schema"
)

// Registry builds the block schema from the built-in types and the
// configured ones. A configured type with a built-in name overrides only
// the fields it sets.
func (c *Config) Registry() (*schema.Registry, error) {
	var defs []schema.Definition
	if c.Schema.IncludeBuiltin {
		defs = schema.BuiltinDefinitions()
	}

	index := make(map[block.Type]int, len(defs))
	for i, d := range defs {
		index[d.Type] = i
	}

	for _, tc := range c.Schema.Types {
		t := block.Type(tc.Type)
		if i, ok := index[t]; ok {
			defs[i] = overrideDefinition(defs[i], tc)
			continue
		}
		index[t] = len(defs)
		defs = append(defs, overrideDefinition(schema.Definition{Type: t, HasText: true}, tc))
	}

	if c.Editor.DefaultType != "" {
		i, ok := index[block.Type(c.Editor.DefaultType)]
		if !ok {
			return nil, &ValidationError{
				Path:    "editor.default_type",
				Message: "is not a registered block type",
				Value:   c.Editor.DefaultType,
			}
		}
		if !defs[i].HasText {
			return nil, &ValidationError{
				Path:    "editor.default_type",
				Message: "must be a text block type",
				Value:   c.Editor.DefaultType,
			}
		}
		for j := range defs {
			defs[j].Default = j == i
		}
	} else if len(defs) > 0 && !hasDefault(defs) {
		defs[0].Default = true
	}

	reg, err := schema.NewRegistry(defs...)
	if err != nil {
		return nil, fmt.Errorf("building schema: %w", err)
	}
	return reg, nil
}

func overrideDefinition(d schema.Definition, tc BlockTypeConfig) schema.Definition {
	if tc.Label != "" {
		d.Label = tc.Label
	}
	if tc.Marker != "" {
		d.Marker = tc.Marker
	}
	if tc.HasText != nil {
		d.HasText = *tc.HasText
	}
	if tc.Continuation != nil {
		d.Continuation = schema.Bool(*tc.Continuation)
	}
	if len(tc.Attrs) > 0 {
		attrs := d.Attrs.Clone()
		if attrs == nil {
			attrs = make(block.Attrs, len(tc.Attrs))
		}
		maps.Copy(attrs, tc.Attrs)
		d.Attrs = attrs
	}
	return d
}

func hasDefault(defs []schema.Definition) bool {
	for _, d := range defs {
		if d.Default {
			return true
		}
	}
	return false
}
