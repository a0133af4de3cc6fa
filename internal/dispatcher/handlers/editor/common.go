package editor

import (
	"fmt"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
)

// target returns the focused block, or a NoOp result when it is gone.
func target(ctx *execctx.ExecutionContext) (block.Block, *handler.Result) {
	if err := ctx.ValidateForEdit(); err != nil {
		r := handler.Error(err)
		return block.Block{}, &r
	}
	b, ok := ctx.Current()
	if !ok {
		r := handler.NoOp()
		return block.Block{}, &r
	}
	return b, nil
}

// run executes a block command against the context target and reports the
// blocks it changed. A command that changed nothing yields a NoOp result.
func run(ctx *execctx.ExecutionContext, name string, args command.Args) (command.Context, handler.Result) {
	before := ctx.Paper.Blocks()
	out, err := command.Run(name, ctx.Command(), args)
	if err != nil {
		return out, handler.Error(fmt.Errorf("%s: %w", name, err))
	}
	changed := block.Diff(before, ctx.Paper.Blocks())
	if len(changed) == 0 {
		return out, handler.NoOp()
	}
	return out, handler.Success().WithChanged(changed...).WithRedraw()
}

// caret returns the offset the caret sits at, clamped to the block.
func caret(ctx *execctx.ExecutionContext, b block.Block) int {
	return min(ctx.Selection.FocusOffset, cursor.Length(b))
}

// collapsedAt reports whether the selection is a caret at offset.
func collapsedAt(ctx *execctx.ExecutionContext, offset int) bool {
	return ctx.Selection.Collapsed() && ctx.Selection.FocusOffset == offset
}
