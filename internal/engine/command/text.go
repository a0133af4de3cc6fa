package command

import "github.com/dshills/paper/internal/engine/block"

// UpdateText replaces the text of the target block. Structural blocks hold
// no text and are left alone.
func UpdateText(ctx Context, text string) (Context, error) {
	if err := ctx.check(); err != nil {
		return ctx, err
	}
	err := ctx.edit(func(seq block.Sequence) (block.Sequence, error) {
		i := seq.IndexOf(ctx.Block.ID)
		if i < 0 || !seq[i].HasText() {
			return nil, nil
		}
		seq[i] = seq[i].WithText(text)
		return seq, nil
	})
	return ctx.refresh(), err
}
