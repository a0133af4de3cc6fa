package command

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/grapheme"
	"github.com/dshills/paper/internal/engine/schema"
)

// SplitBlock splits the target at its selection. The text before the
// selection stays in the target, the text after it moves to a new block
// inserted right after the target, and the selected text is discarded.
//
// The new block keeps the target's type when that type is a continuation
// type and falls back to the default type otherwise. It takes the target's
// indent. A structural target is left untouched and an empty default block
// is inserted after it.
func SplitBlock(ctx Context) (Context, error) {
	if err := ctx.check(); err != nil {
		return ctx, err
	}
	if ctx.Schema == nil {
		return ctx, ErrNoSchema
	}

	err := ctx.edit(func(seq block.Sequence) (block.Sequence, error) {
		i := seq.IndexOf(ctx.Block.ID)
		if i < 0 {
			return nil, nil
		}
		cur := seq[i]

		var next block.Block
		if !cur.HasText() {
			next = ctx.Schema.DefaultSchema().CreateBlock(schema.TextAndIndent("", cur.Indent))
		} else {
			def, err := ctx.Schema.Find(cur.Type)
			if err != nil {
				return nil, fmt.Errorf("split block: %w", err)
			}
			if !def.IsContinuation() {
				def = ctx.Schema.DefaultSchema()
			}
			head, _, tail := grapheme.SplitAt(cur.TextValue(), ctx.Selection.Min(), ctx.Selection.Max())
			seq[i] = cur.WithText(head)
			next = def.CreateBlock(schema.TextAndIndent(tail, cur.Indent))
		}

		return insert(seq, i+1, next), nil
	})
	return ctx.refresh(), err
}

func insert(seq block.Sequence, at int, items ...block.Block) block.Sequence {
	out := make(block.Sequence, 0, len(seq)+len(items))
	out = append(out, seq[:at]...)
	out = append(out, items...)
	return append(out, seq[at:]...)
}
