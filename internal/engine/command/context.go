package command

import (
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
)

// Selection is a linear selection inside the target block's text.
// Offsets count grapheme clusters.
type Selection struct {
	AnchorOffset int
	FocusOffset  int
}

// Caret returns a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{AnchorOffset: offset, FocusOffset: offset}
}

// Collapsed reports whether anchor and focus coincide.
func (s Selection) Collapsed() bool {
	return s.AnchorOffset == s.FocusOffset
}

// Min returns the smaller offset.
func (s Selection) Min() int {
	return max(min(s.AnchorOffset, s.FocusOffset), 0)
}

// Max returns the larger offset.
func (s Selection) Max() int {
	return max(s.AnchorOffset, s.FocusOffset, 0)
}

// Context carries everything a command needs.
type Context struct {
	// Block is the target. Only its ID is authoritative; the other fields
	// are refreshed from the paper when a command runs.
	Block block.Block

	// Schema resolves block types.
	Schema *schema.Registry

	// Paper holds the sequence being edited.
	Paper *paper.Paper

	// Selection is the caret or selection inside Block.
	Selection Selection
}

// NewContext returns a context targeting id. A missing id leaves the
// target empty, which makes every command a no-op.
func NewContext(p *paper.Paper, reg *schema.Registry, id block.ID, sel Selection) Context {
	b, ok := p.Find(id)
	if !ok {
		b = block.Block{ID: id}
	}
	return Context{Block: b, Schema: reg, Paper: p, Selection: sel}
}

// WithBlock returns a copy of ctx targeting b.
func (ctx Context) WithBlock(b block.Block) Context {
	ctx.Block = b
	return ctx
}

// WithSelection returns a copy of ctx with sel.
func (ctx Context) WithSelection(sel Selection) Context {
	ctx.Selection = sel
	return ctx
}

// refresh re-reads the target from the paper.
func (ctx Context) refresh() Context {
	if b, ok := ctx.Paper.Find(ctx.Block.ID); ok {
		ctx.Block = b
	}
	return ctx
}

func (ctx Context) check() error {
	if ctx.Paper == nil {
		return ErrNoPaper
	}
	return nil
}

// edit runs fn against the working sequence inside one transaction and
// stages the sequence fn returns. fn returning nil stages nothing.
func (ctx Context) edit(fn func(seq block.Sequence) (block.Sequence, error)) error {
	var err error
	ctx.Paper.Transaction(func(tx *paper.Tx) {
		var next block.Sequence
		next, err = fn(tx.Blocks())
		if err != nil || next == nil {
			return
		}
		err = tx.SetBlocks(next)
	})
	return err
}
