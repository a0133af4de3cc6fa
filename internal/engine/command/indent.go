package command

import "github.com/dshills/paper/internal/engine/block"

// Indent increases the target's indent by one, up to block.MaxIndent.
// Only the target moves; its group keeps its indents.
func Indent(ctx Context) (Context, error) {
	return shift(ctx, 1)
}

// Outdent decreases the target's indent by one, down to block.MinIndent.
func Outdent(ctx Context) (Context, error) {
	return shift(ctx, -1)
}

func shift(ctx Context, delta int) (Context, error) {
	if err := ctx.check(); err != nil {
		return ctx, err
	}
	err := ctx.edit(func(seq block.Sequence) (block.Sequence, error) {
		i := seq.IndexOf(ctx.Block.ID)
		if i < 0 {
			return nil, nil
		}
		seq[i] = seq[i].WithIndent(seq[i].Indent + delta)
		return seq, nil
	})
	return ctx.refresh(), err
}
