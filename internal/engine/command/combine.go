package command

import "github.com/dshills/paper/internal/engine/block"

// CombineBlock merges the target into the block before it: the preceding
// block's text becomes its own text followed by the target's, and the
// target is removed. The returned context targets the merged block.
//
// A target without a predecessor, or whose predecessor holds no text, is
// left alone. Blocks nested under the removed target keep their indents;
// they are not re-homed under the merged block.
func CombineBlock(ctx Context) (Context, error) {
	if err := ctx.check(); err != nil {
		return ctx, err
	}

	merged := ctx.Block.ID
	err := ctx.edit(func(seq block.Sequence) (block.Sequence, error) {
		i := seq.IndexOf(ctx.Block.ID)
		if i <= 0 || !seq[i-1].HasText() {
			return nil, nil
		}
		prev := seq[i-1]
		seq[i-1] = prev.WithText(prev.TextValue() + seq[i].TextValue())
		merged = prev.ID
		return append(seq[:i:i], seq[i+1:]...), nil
	})
	if err != nil {
		return ctx, err
	}
	ctx.Block.ID = merged
	return ctx.refresh(), nil
}
