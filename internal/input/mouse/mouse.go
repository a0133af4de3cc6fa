package mouse

import (
	"sync"
	"time"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/input"
	"github.com/dshills/paper/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position represents a screen cell.
type Position struct {
	X int
	Y int
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a mouse input event.
type Event struct {
	Position  Position
	Button    Button
	Modifiers key.Modifier
	Action    Action
	Timestamp time.Time
}

// Region is the part of a rendered block under the pointer.
type Region uint8

const (
	// RegionNone is outside any block.
	RegionNone Region = iota
	// RegionHandle is the drag handle column.
	RegionHandle
	// RegionText is the block's marker or text.
	RegionText
)

// Hit describes what lies under a screen position.
type Hit struct {
	Block  block.ID
	Region Region
	// Offset is the grapheme offset within the block text for RegionText.
	Offset int
}

// HitTester maps screen positions to blocks.
type HitTester interface {
	HitTest(pos Position) (Hit, bool)
}

// Standard action names produced by the handler.
const (
	ActionFocus      = "editor.focus"
	ActionDragStart  = "editor.dragStart"
	ActionDragOver   = "editor.dragOver"
	ActionDrop       = "editor.drop"
	ActionDragCancel = "editor.dragCancel"
	ActionScrollUp   = "view.scrollUp"
	ActionScrollDown = "view.scrollDown"
)

// Config configures mouse handler behavior.
type Config struct {
	// DoubleClickTime is the maximum time between clicks for a double-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks for a double-click.
	DoubleClickDistance int

	// ScrollLines is the number of lines to scroll per wheel tick.
	ScrollLines int

	// ScrollLinesShift is the number of lines when Shift is held.
	ScrollLinesShift int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
		ScrollLines:         3,
		ScrollLinesShift:    1,
	}
}

// Handler processes mouse events and generates editor actions.
type Handler struct {
	mu     sync.Mutex
	config Config
	hits   HitTester

	click *clickTracker
	drag  *dragTracker
}

// NewHandler creates a mouse handler resolving positions through hits.
func NewHandler(config Config, hits HitTester) *Handler {
	return &Handler{
		config: config,
		hits:   hits,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
		drag:   newDragTracker(),
	}
}

// Handle processes a mouse event and returns an action, or nil.
func (h *Handler) Handle(event Event) *input.Action {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Action {
	case ActionPress:
		if event.Button.IsScroll() {
			return h.handleScroll(event)
		}
		if event.Button == ButtonLeft {
			return h.handleLeftPress(event)
		}
	case ActionRelease:
		return h.handleRelease(event)
	case ActionDrag:
		return h.handleDrag(event)
	}
	return nil
}

func (h *Handler) hit(pos Position) (Hit, bool) {
	if h.hits == nil {
		return Hit{}, false
	}
	hit, ok := h.hits.HitTest(pos)
	if !ok || hit.Block.IsZero() || hit.Region == RegionNone {
		return Hit{}, false
	}
	return hit, true
}

func (h *Handler) handleLeftPress(event Event) *input.Action {
	hit, ok := h.hit(event.Position)
	if !ok {
		h.click.reset()
		return nil
	}

	if hit.Region == RegionHandle {
		h.click.reset()
		h.drag.start(event.Position, hit.Block)
		a := input.NewAction(ActionDragStart, input.SourceMouse).WithBlock(hit.Block)
		return &a
	}

	count := h.click.recordClick(event.Position, event.Timestamp)
	a := input.NewAction(ActionFocus, input.SourceMouse).WithBlock(hit.Block).WithCount(count)
	a.Args.Offset = hit.Offset
	return &a
}

func (h *Handler) handleDrag(event Event) *input.Action {
	if !h.drag.isActive() {
		return nil
	}
	h.drag.update(event.Position)

	hit, ok := h.hit(event.Position)
	if !ok || !h.drag.hover(hit.Block) {
		return nil
	}
	a := input.NewAction(ActionDragOver, input.SourceMouse).WithBlock(h.drag.source)
	a.Args.Dest = hit.Block
	return &a
}

func (h *Handler) handleRelease(event Event) *input.Action {
	if !h.drag.isActive() {
		return nil
	}
	defer h.drag.end()

	dest := h.drag.over
	if hit, ok := h.hit(event.Position); ok {
		dest = hit.Block
	}
	if dest.IsZero() || dest == h.drag.source {
		a := input.NewAction(ActionDragCancel, input.SourceMouse).WithBlock(h.drag.source)
		return &a
	}
	a := input.NewAction(ActionDrop, input.SourceMouse).WithBlock(h.drag.source)
	a.Args.Dest = dest
	return &a
}

func (h *Handler) handleScroll(event Event) *input.Action {
	lines := h.config.ScrollLines
	if event.Modifiers.Has(key.ModShift) {
		lines = h.config.ScrollLinesShift
	}

	name := ActionScrollDown
	if event.Button == ButtonScrollUp {
		name = ActionScrollUp
	}
	a := input.NewAction(name, input.SourceMouse).WithCount(lines)
	return &a
}

// Reset clears all handler state.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.click.reset()
	h.drag.end()
}

// CancelDrag abandons a drag in progress.
func (h *Handler) CancelDrag() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drag.end()
}

// DragState describes a block drag in progress.
type DragState struct {
	// Source is the root of the dragged group.
	Source block.ID
	// Over is the block currently under the pointer, zero if none yet.
	Over block.ID
}

// Drag returns the drag in progress, if any.
func (h *Handler) Drag() (DragState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.drag.isActive() {
		return DragState{}, false
	}
	return DragState{Source: h.drag.source, Over: h.drag.over}, true
}
