package view

import (
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
)

// Action names for view operations.
const (
	ActionScrollUp   = "view.scrollUp"
	ActionScrollDown = "view.scrollDown"
	ActionPageUp     = "view.pageUp"
	ActionPageDown   = "view.pageDown"
	ActionTop        = "view.top"
	ActionBottom     = "view.bottom"
	ActionReveal     = "view.reveal"
)

// DefaultPageLines is the page size used when the renderer cannot report
// its height.
const DefaultPageLines = 20

// Pager is implemented by renderers that know their visible height.
type Pager interface {
	PageHeight() int
}

// Handler implements namespace-based view handling.
type Handler struct{}

// NewHandler creates a new view handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the view namespace.
func (h *Handler) Namespace() string {
	return "view"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionScrollUp, ActionScrollDown, ActionPageUp, ActionPageDown,
		ActionTop, ActionBottom, ActionReveal:
		return true
	}
	return false
}

// HandleAction processes a view action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	count := ctx.GetCount()

	switch action.Name {
	case ActionScrollUp:
		return handler.Success().WithScroll(-count)
	case ActionScrollDown:
		return handler.Success().WithScroll(count)
	case ActionPageUp:
		return handler.Success().WithScroll(-count * pageLines(ctx))
	case ActionPageDown:
		return handler.Success().WithScroll(count * pageLines(ctx))
	case ActionTop, ActionBottom:
		return h.edge(ctx, action.Name == ActionTop)
	case ActionReveal:
		if ctx.Block.IsZero() {
			return handler.NoOp()
		}
		return handler.Success().WithReveal(ctx.Block)
	default:
		return handler.Errorf("unknown view action: %s", action.Name)
	}
}

// edge reveals the first or last block and moves the caret there.
func (h *Handler) edge(ctx *execctx.ExecutionContext, top bool) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	seq := ctx.Paper.Blocks()
	if len(seq) == 0 {
		return handler.NoOp()
	}
	if top {
		id := seq[0].ID
		return handler.Success().WithReveal(id).WithFocus(handler.FocusStartOf(id))
	}
	id := seq[len(seq)-1].ID
	return handler.Success().WithReveal(id).WithFocus(handler.FocusEndOf(id))
}

func pageLines(ctx *execctx.ExecutionContext) int {
	if p, ok := ctx.Renderer.(Pager); ok {
		if n := p.PageHeight(); n > 0 {
			return max(n-1, 1)
		}
	}
	return DefaultPageLines
}
