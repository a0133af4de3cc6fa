package cursor

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/grapheme"
)

// Cursor is a focused block and a selection inside it.
type Cursor struct {
	Block     block.ID
	Selection command.Selection
}

// At returns a collapsed cursor at offset inside id.
func At(id block.ID, offset int) Cursor {
	return Cursor{Block: id, Selection: command.Caret(offset)}
}

// IsZero reports whether the cursor focuses nothing.
func (c Cursor) IsZero() bool {
	return c.Block.IsZero()
}

// Offset returns the focus offset.
func (c Cursor) Offset() int {
	return c.Selection.FocusOffset
}

// Collapsed reports whether the cursor is a plain caret.
func (c Cursor) Collapsed() bool {
	return c.Selection.Collapsed()
}

// MoveTo returns a collapsed cursor at offset in the same block.
func (c Cursor) MoveTo(offset int) Cursor {
	c.Selection = command.Caret(offset)
	return c
}

// Extend moves the focus to offset and keeps the anchor.
func (c Cursor) Extend(offset int) Cursor {
	c.Selection.FocusOffset = offset
	return c
}

// Clamp returns the cursor with both offsets inside [0, length].
func (c Cursor) Clamp(length int) Cursor {
	c.Selection = ClampSelection(c.Selection, length)
	return c
}

// String returns a debug representation.
func (c Cursor) String() string {
	if c.Collapsed() {
		return fmt.Sprintf("Cursor(%s@%d)", c.Block, c.Offset())
	}
	return fmt.Sprintf("Cursor(%s@%d..%d)", c.Block, c.Selection.AnchorOffset, c.Selection.FocusOffset)
}

// ClampSelection clamps both offsets of sel to [0, length].
func ClampSelection(sel command.Selection, length int) command.Selection {
	length = max(length, 0)
	return command.Selection{
		AnchorOffset: min(max(sel.AnchorOffset, 0), length),
		FocusOffset:  min(max(sel.FocusOffset, 0), length),
	}
}

// Length returns the caret range of b: its text length in grapheme
// clusters, or zero for a structural block.
func Length(b block.Block) int {
	if !b.HasText() {
		return 0
	}
	return grapheme.Count(b.TextValue())
}

// TransformOffset moves offset across a replacement of [start, end) with
// inserted clusters. Offsets before the edit stay, offsets after it shift by
// the length change and offsets inside it land at the end of the new text.
func TransformOffset(offset, start, end, inserted int) int {
	switch {
	case offset < start:
		return offset
	case offset >= end:
		return offset - (end - start) + inserted
	default:
		return start + inserted
	}
}
