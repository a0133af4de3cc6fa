package editor

import (
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/grapheme"
	"github.com/dshills/paper/internal/input"
)

// Action names for text input.
const (
	ActionInsertText    = input.ActionInsertText
	ActionDeleteBack    = "editor.deleteBack"
	ActionDeleteForward = "editor.deleteForward"
)

// TextHandler edits the text of the focused block. Every edit goes
// through updateText with the block's whole new text.
type TextHandler struct{}

// NewTextHandler creates a new text handler.
func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

// Namespace returns the editor namespace.
func (h *TextHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *TextHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertText, ActionDeleteBack, ActionDeleteForward:
		return true
	}
	return false
}

// HandleAction processes a text edit.
func (h *TextHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	b, r := target(ctx)
	if r != nil {
		return *r
	}

	switch action.Name {
	case ActionInsertText:
		return h.insert(ctx, b, action.Args.Text)
	case ActionDeleteBack:
		return h.deleteBack(ctx, b)
	case ActionDeleteForward:
		return h.deleteForward(ctx, b)
	default:
		return handler.Errorf("unknown text action: %s", action.Name)
	}
}

// replace swaps the selected clusters for s and places the caret after the
// inserted text.
func (h *TextHandler) replace(ctx *execctx.ExecutionContext, b block.Block, sel command.Selection, s string) handler.Result {
	if !b.HasText() {
		return handler.NoOp()
	}
	sel = cursor.ClampSelection(sel, cursor.Length(b))
	head, _, tail := grapheme.SplitAt(b.TextValue(), sel.Min(), sel.Max())

	_, res := run(ctx, command.NameUpdateText, command.Args{Text: head + s + tail})
	off := cursor.TransformOffset(sel.FocusOffset, sel.Min(), sel.Max(), grapheme.Count(s))
	return res.WithFocus(handler.FocusOffset(b.ID, off))
}

func (h *TextHandler) insert(ctx *execctx.ExecutionContext, b block.Block, s string) handler.Result {
	if s == "" {
		return handler.NoOp()
	}
	return h.replace(ctx, b, ctx.Selection, s)
}

// deleteBack removes the selection, or the cluster before the caret.
func (h *TextHandler) deleteBack(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	sel := ctx.Selection
	if sel.Collapsed() {
		off := caret(ctx, b)
		if off == 0 {
			return handler.NoOp()
		}
		sel = command.Selection{AnchorOffset: off - 1, FocusOffset: off}
	}
	return h.replace(ctx, b, sel, "")
}

// deleteForward removes the selection, or the cluster after the caret. At
// the end of the block it pulls the next block's text in.
func (h *TextHandler) deleteForward(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	sel := ctx.Selection
	if !sel.Collapsed() {
		return h.replace(ctx, b, sel, "")
	}
	off, length := caret(ctx, b), cursor.Length(b)
	if off < length {
		return h.replace(ctx, b, command.Selection{AnchorOffset: off, FocusOffset: off + 1}, "")
	}

	next, ok := ctx.Paper.FindNextBlock(b.ID)
	if !ok || !b.HasText() {
		return handler.NoOp()
	}
	ctx.Block = next.ID
	_, res := run(ctx, command.NameCombineBlock, command.Args{})
	ctx.Block = b.ID
	return res.WithFocus(handler.FocusOffset(b.ID, length))
}
