package editor

import (
	"sync"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/input"
)

// Action names for pointer drags.
const (
	ActionDragStart  = "editor.dragStart"
	ActionDragOver   = "editor.dragOver"
	ActionDrop       = "editor.drop"
	ActionDragCancel = "editor.dragCancel"
)

// DropIndicator describes where a dragged group would land.
type DropIndicator struct {
	// Source is the root of the dragged group.
	Source block.ID

	// Over is the block under the pointer. Zero until the pointer leaves
	// the source.
	Over block.ID

	// Placement is the side of Over the group lands on.
	Placement command.Placement

	// Allowed is false when Over lies inside the dragged group.
	Allowed bool
}

// DragHandler tracks a block drag and moves the group on drop.
type DragHandler struct {
	mu     sync.RWMutex
	active bool
	state  DropIndicator
}

// NewDragHandler creates a new drag handler.
func NewDragHandler() *DragHandler {
	return &DragHandler{}
}

// Namespace returns the editor namespace.
func (h *DragHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *DragHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionDragStart, ActionDragOver, ActionDrop, ActionDragCancel:
		return true
	}
	return false
}

// Indicator returns the drag in progress, if any.
func (h *DragHandler) Indicator() (DropIndicator, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state, h.active
}

// HandleAction processes a drag gesture. The dragged block is the action
// target; the hovered block is Args.Dest.
func (h *DragHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name == ActionDragCancel {
		h.reset()
		return handler.Success().WithRedraw()
	}

	b, r := target(ctx)
	if r != nil {
		h.reset()
		return *r
	}

	switch action.Name {
	case ActionDragStart:
		h.mu.Lock()
		h.active = true
		h.state = DropIndicator{Source: b.ID}
		h.mu.Unlock()
		return handler.Success().WithRedraw()
	case ActionDragOver:
		return h.over(ctx, b, action.Args.Dest)
	case ActionDrop:
		return h.drop(ctx, b, action.Args.Dest)
	default:
		return handler.Errorf("unknown drag action: %s", action.Name)
	}
}

func (h *DragHandler) over(ctx *execctx.ExecutionContext, b block.Block, dest block.ID) handler.Result {
	if _, ok := ctx.Paper.Find(dest); !ok {
		return handler.NoOp()
	}
	ind := DropIndicator{
		Source:    b.ID,
		Over:      dest,
		Placement: command.DropPlacement(ctx.Paper, b.ID, dest),
		Allowed:   command.CanMoveTo(ctx.Paper, b.ID, dest) == nil,
	}
	h.mu.Lock()
	h.active = true
	h.state = ind
	h.mu.Unlock()
	return handler.Success().WithRedraw()
}

// drop moves the dragged group next to dest, above it when dragging up
// and below it when dragging down. Drops inside the group are refused.
func (h *DragHandler) drop(ctx *execctx.ExecutionContext, b block.Block, dest block.ID) handler.Result {
	defer h.reset()

	if err := command.CanMoveTo(ctx.Paper, b.ID, dest); err != nil {
		return handler.NoOpWithMessage(err.Error()).WithRedraw()
	}
	at := command.DropPlacement(ctx.Paper, b.ID, dest)
	_, res := run(ctx, command.NameMoveTo, command.Args{Target: b.ID, Dest: dest, Placement: at})
	return res.WithRedraw().WithReveal(b.ID)
}

func (h *DragHandler) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = false
	h.state = DropIndicator{}
}
