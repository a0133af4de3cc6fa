package paper

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
)

// Tx stages writes to a paper's sequence. It is only valid inside the
// function passed to Paper.Transaction.
type Tx struct {
	paper  *Paper
	staged block.Sequence
	writes int
}

// Blocks returns a snapshot of the working sequence, including writes
// staged so far in this transaction.
func (tx *Tx) Blocks() block.Sequence {
	return tx.paper.current().Clone()
}

// SetBlocks stages a new sequence. Indents are clamped and missing IDs are
// assigned. A sequence that repeats an ID is rejected and leaves the
// staged state unchanged.
func (tx *Tx) SetBlocks(seq block.Sequence) error {
	next := seq.Clone().Normalize()
	if dup, ok := next.Validate(); !ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, dup)
	}
	if next == nil {
		next = block.Sequence{}
	}
	tx.staged = next
	tx.writes++
	return nil
}

// Paper returns the paper the transaction belongs to.
func (tx *Tx) Paper() *Paper {
	return tx.paper
}
