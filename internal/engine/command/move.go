package command

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/paper"
)

// Placement says on which side of the destination a moved group lands.
type Placement int

const (
	// After places the group immediately after the destination block.
	After Placement = iota
	// Before places the group immediately before the destination block.
	Before
)

// String returns the placement name.
func (p Placement) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// MoveTo relocates the group rooted at targetID so that it sits right
// after destID, keeping the group's internal order. Missing IDs and
// destinations inside the group are no-ops.
func MoveTo(ctx Context, targetID, destID block.ID) (Context, error) {
	return Move(ctx, targetID, destID, After)
}

// Move relocates the group rooted at targetID next to destID.
//
// With l the group length and targetIndex, toIndex the positions of the two
// IDs before the move, the group is removed at targetIndex and reinserted
// at toIndex (plus one for After) when the destination precedes the group,
// or at toIndex-l+1 (minus one for Before) when it follows it.
func Move(ctx Context, targetID, destID block.ID, at Placement) (Context, error) {
	if err := ctx.check(); err != nil {
		return ctx, err
	}
	err := ctx.edit(func(seq block.Sequence) (block.Sequence, error) {
		to, ok := moveIndex(seq, targetID, destID, at)
		if !ok {
			return nil, nil
		}
		targetIndex := seq.IndexOf(targetID)
		start, end := paper.GroupRange(seq, targetIndex)
		group := seq[start:end].Clone()

		rest := make(block.Sequence, 0, len(seq))
		rest = append(rest, seq[:start]...)
		rest = append(rest, seq[end:]...)
		return insert(rest, to, group...), nil
	})
	return ctx.refresh(), err
}

// moveIndex returns the insertion index into the sequence with the group
// removed, or false when the move is a no-op.
func moveIndex(seq block.Sequence, targetID, destID block.ID, at Placement) (int, bool) {
	targetIndex := seq.IndexOf(targetID)
	toIndex := seq.IndexOf(destID)
	if targetIndex < 0 || toIndex < 0 {
		return 0, false
	}
	start, end := paper.GroupRange(seq, targetIndex)
	if toIndex >= start && toIndex < end {
		return 0, false
	}
	l := end - start

	if toIndex < targetIndex {
		if at == After {
			return toIndex + 1, true
		}
		return toIndex, true
	}
	if at == Before {
		return toIndex - l, true
	}
	return toIndex - l + 1, true
}

// CanMoveTo reports whether the group rooted at targetID may be dropped on
// destID. It returns ErrSelfContainingMove for a destination inside the
// group and paper.ErrBlockNotFound for unknown IDs.
func CanMoveTo(p *paper.Paper, targetID, destID block.ID) error {
	if p == nil {
		return ErrNoPaper
	}
	seq := p.Blocks()
	if seq.IndexOf(targetID) < 0 {
		return fmt.Errorf("move %s: %w", targetID, paper.ErrBlockNotFound)
	}
	if seq.IndexOf(destID) < 0 {
		return fmt.Errorf("move to %s: %w", destID, paper.ErrBlockNotFound)
	}
	if paper.InGroup(seq, targetID, destID) {
		return ErrSelfContainingMove
	}
	return nil
}

// DropPlacement returns where a drag of targetID onto destID lands: before
// the destination when dragging upward, after it when dragging downward.
func DropPlacement(p *paper.Paper, targetID, destID block.ID) Placement {
	if p.IndexOf(targetID) > p.IndexOf(destID) {
		return Before
	}
	return After
}
