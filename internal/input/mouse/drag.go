package mouse

import "github.com/dshills/paper/internal/engine/block"

// dragTracker tracks a block handle drag.
type dragTracker struct {
	active     bool
	source     block.ID
	over       block.ID
	startPos   Position
	currentPos Position
}

func newDragTracker() *dragTracker {
	return &dragTracker{}
}

func (t *dragTracker) start(pos Position, source block.ID) {
	t.active = true
	t.source = source
	t.over = ""
	t.startPos = pos
	t.currentPos = pos
}

func (t *dragTracker) update(pos Position) {
	if t.active {
		t.currentPos = pos
	}
}

// hover records the block under the pointer and reports whether it
// changed.
func (t *dragTracker) hover(id block.ID) bool {
	if !t.active || id == t.over {
		return false
	}
	t.over = id
	return true
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

func (t *dragTracker) isActive() bool {
	return t.active
}
