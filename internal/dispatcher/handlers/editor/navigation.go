package editor

import (
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/input"
)

// Action names for caret movement.
const (
	ActionArrowUp    = "editor.arrowUp"
	ActionArrowDown  = "editor.arrowDown"
	ActionArrowLeft  = "editor.arrowLeft"
	ActionArrowRight = "editor.arrowRight"
	ActionHome       = "editor.home"
	ActionEnd        = "editor.end"
	ActionFocus      = "editor.focus"
)

// NavigationHandler moves the caret within and across blocks. It never
// changes the document.
type NavigationHandler struct{}

// NewNavigationHandler creates a new navigation handler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Namespace returns the editor namespace.
func (h *NavigationHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *NavigationHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionArrowUp, ActionArrowDown, ActionArrowLeft, ActionArrowRight,
		ActionHome, ActionEnd, ActionFocus:
		return true
	}
	return false
}

// HandleAction processes a caret movement.
func (h *NavigationHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	b, r := target(ctx)
	if r != nil {
		return *r
	}

	switch action.Name {
	case ActionArrowUp:
		return h.up(ctx, b)
	case ActionArrowDown:
		return h.down(ctx, b)
	case ActionArrowLeft:
		return h.left(ctx, b)
	case ActionArrowRight:
		return h.right(ctx, b)
	case ActionHome:
		return focus(handler.FocusStartOf(b.ID))
	case ActionEnd:
		return focus(handler.FocusEndOf(b.ID))
	case ActionFocus:
		return h.click(ctx, b)
	default:
		return handler.Errorf("unknown navigation action: %s", action.Name)
	}
}

func focus(f handler.Focus) handler.Result {
	return handler.Success().WithFocus(f)
}

// up leaves the block from its first offset, landing at the end of the
// previous block. Elsewhere it moves the caret to the start.
func (h *NavigationHandler) up(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if !collapsedAt(ctx, 0) {
		return focus(handler.FocusStartOf(b.ID))
	}
	prev, ok := ctx.Paper.FindPrevBlock(b.ID)
	if !ok {
		return handler.NoOp()
	}
	return focus(handler.FocusEndOf(prev.ID))
}

// down leaves the block from its last offset, landing at the start of the
// next block. Elsewhere it moves the caret to the end.
func (h *NavigationHandler) down(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if !ctx.Selection.Collapsed() || ctx.Selection.FocusOffset < cursor.Length(b) {
		return focus(handler.FocusEndOf(b.ID))
	}
	next, ok := ctx.Paper.FindNextBlock(b.ID)
	if !ok {
		return handler.NoOp()
	}
	return focus(handler.FocusStartOf(next.ID))
}

func (h *NavigationHandler) left(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if !ctx.Selection.Collapsed() {
		return focus(handler.FocusOffset(b.ID, ctx.Selection.Min()))
	}
	if off := caret(ctx, b); off > 0 {
		return focus(handler.FocusOffset(b.ID, off-1))
	}
	prev, ok := ctx.Paper.FindPrevBlock(b.ID)
	if !ok {
		return handler.NoOp()
	}
	return focus(handler.FocusEndOf(prev.ID))
}

func (h *NavigationHandler) right(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if !ctx.Selection.Collapsed() {
		return focus(handler.FocusOffset(b.ID, ctx.Selection.Max()))
	}
	if off := caret(ctx, b); off < cursor.Length(b) {
		return focus(handler.FocusOffset(b.ID, off+1))
	}
	next, ok := ctx.Paper.FindNextBlock(b.ID)
	if !ok {
		return handler.NoOp()
	}
	return focus(handler.FocusStartOf(next.ID))
}

// click focuses the clicked offset. A double click selects the block text.
func (h *NavigationHandler) click(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if ctx.GetCount() >= 2 {
		return focus(handler.FocusAllOf(b.ID))
	}
	return focus(handler.FocusOffset(b.ID, ctx.Selection.FocusOffset))
}
