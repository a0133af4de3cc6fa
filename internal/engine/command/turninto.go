package command

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/schema"
)

// TurnInto converts the target into type t. The new block is built by the
// registry from the target's fields with overrides applied on top, so ID,
// text and indent survive unless overridden. Attributes the new type does
// not declare are dropped.
func TurnInto(ctx Context, t block.Type, overrides schema.Fields) (Context, error) {
	if err := ctx.check(); err != nil {
		return ctx, err
	}
	if ctx.Schema == nil {
		return ctx, ErrNoSchema
	}
	def, err := ctx.Schema.Find(t)
	if err != nil {
		return ctx, fmt.Errorf("turn into: %w", err)
	}

	err = ctx.edit(func(seq block.Sequence) (block.Sequence, error) {
		i := seq.IndexOf(ctx.Block.ID)
		if i < 0 {
			return nil, nil
		}
		fields := schema.FieldsOf(seq[i]).Merge(overrides)
		seq[i] = def.CreateBlock(fields)
		return seq, nil
	})
	if err != nil {
		return ctx, err
	}

	// An override may have replaced the ID.
	if !overrides.ID.IsZero() {
		if _, ok := ctx.Paper.Find(overrides.ID); ok {
			ctx.Block.ID = overrides.ID
		}
	}
	return ctx.refresh(), nil
}
