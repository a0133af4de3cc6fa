package cursor

import (
	"sync"

	"github.com/dshills/paper/internal/engine/block"
)

// Tracker holds the cursor across commits.
type Tracker struct {
	mu    sync.RWMutex
	cur   Cursor
	index int
}

// NewTracker returns a tracker focused on nothing.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Get returns the current cursor.
func (t *Tracker) Get() Cursor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cur
}

// Set replaces the cursor. It is not validated until the next Sync.
func (t *Tracker) Set(c Cursor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur = c
}

// Focus places a caret at offset inside id.
func (t *Tracker) Focus(id block.ID, offset int) {
	t.Set(At(id, offset))
}

// Sync validates the cursor against seq and returns the result.
//
// A cursor on a block still in seq is clamped to its text. A cursor whose
// block is gone moves to the end of the block before its last known
// position, or to the start of the first block when there is none. An
// empty sequence leaves the cursor focused on nothing.
func (t *Tracker) Sync(seq block.Sequence) Cursor {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(seq) == 0 {
		t.cur = Cursor{}
		t.index = 0
		return t.cur
	}

	if i := seq.IndexOf(t.cur.Block); i >= 0 {
		t.index = i
		t.cur = t.cur.Clamp(Length(seq[i]))
		return t.cur
	}

	if t.cur.IsZero() {
		t.index = 0
		t.cur = At(seq[0].ID, 0)
		return t.cur
	}

	i := min(t.index, len(seq)) - 1
	if i < 0 {
		t.index = 0
		t.cur = At(seq[0].ID, 0)
		return t.cur
	}
	t.index = i
	t.cur = At(seq[i].ID, Length(seq[i]))
	return t.cur
}
