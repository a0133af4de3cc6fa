package editor

import (
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
)

// Namespace is the action namespace of editor gestures.
const Namespace = "editor"

// subHandler is a gesture group sharing the editor namespace.
type subHandler interface {
	CanHandle(actionName string) bool
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result
}

// CombinedHandler handles all editor gestures by delegating to the
// specialized handlers.
type CombinedHandler struct {
	structure *StructureHandler
	nav       *NavigationHandler
	text      *TextHandler
	drag      *DragHandler
}

// NewCombinedHandler creates a handler that combines all gesture handlers.
func NewCombinedHandler() *CombinedHandler {
	return &CombinedHandler{
		structure: NewStructureHandler(),
		nav:       NewNavigationHandler(),
		text:      NewTextHandler(),
		drag:      NewDragHandler(),
	}
}

// Drag returns the drag handler, which the renderer reads for drop
// indicators.
func (h *CombinedHandler) Drag() *DragHandler {
	return h.drag
}

// Namespace returns the editor namespace.
func (h *CombinedHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if some gesture handler accepts the action.
func (h *CombinedHandler) CanHandle(actionName string) bool {
	return h.find(actionName) != nil
}

// HandleAction runs the gesture.
func (h *CombinedHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	sub := h.find(action.Name)
	if sub == nil {
		return handler.Errorf("unknown editor action: %s", action.Name)
	}
	return sub.HandleAction(action, ctx)
}

func (h *CombinedHandler) find(actionName string) subHandler {
	for _, sub := range []subHandler{h.structure, h.nav, h.text, h.drag} {
		if sub.CanHandle(actionName) {
			return sub
		}
	}
	return nil
}
