package paper

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/engine/block"
)

// Change is delivered to listeners on every commit.
type Change struct {
	// Blocks is a snapshot of the committed sequence.
	Blocks block.Sequence

	// Revision counts commits since the paper was created.
	Revision uint64
}

// Listener is called with the current sequence on every commit.
type Listener func(change Change)

// Paper owns the authoritative block sequence of one document.
//
// Writes are staged inside Transaction and broadcast to listeners by
// Commit. A Paper is driven by a single logical thread; it performs no
// locking and callers must serialize access.
type Paper struct {
	blocks    block.Sequence
	committed block.Sequence
	revision  uint64

	// Listener registry in registration order.
	subs   []*Subscription
	nextID uint64

	// Hooks that run after every listener of a commit.
	afterCommit []func(Change)

	// Transaction state
	tx            *Tx
	pendingCommit bool

	strict bool
	closed bool
	logger zerolog.Logger
}

// New creates a paper holding the initial blocks. Indents are clamped and
// blocks without an ID receive one. The initial sequence counts as
// committed revision 0.
func New(initial block.Sequence, opts ...Option) (*Paper, error) {
	p := &Paper{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	seq := initial.Clone().Normalize()
	if dup, ok := seq.Validate(); !ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, dup)
	}
	if seq == nil {
		seq = block.Sequence{}
	}
	p.blocks = seq
	p.committed = seq.Clone()
	return p, nil
}

// Blocks returns a snapshot of the current sequence. Inside a transaction
// this includes the writes staged so far. Callers may modify the returned
// slice freely.
func (p *Paper) Blocks() block.Sequence {
	return p.current().Clone()
}

// Len returns the number of blocks in the current sequence.
func (p *Paper) Len() int {
	return len(p.current())
}

// Committed returns the sequence as of the most recent Commit.
func (p *Paper) Committed() block.Sequence {
	return p.committed.Clone()
}

// Revision returns the number of commits performed.
func (p *Paper) Revision() uint64 {
	return p.revision
}

// InTransaction reports whether a transaction is running.
func (p *Paper) InTransaction() bool {
	return p.tx != nil
}

// current returns the working sequence without copying.
func (p *Paper) current() block.Sequence {
	if p.tx != nil && p.tx.staged != nil {
		return p.tx.staged
	}
	return p.blocks
}

// SetBlocks replaces the sequence. Inside a transaction the write is staged.
// Outside one it overwrites the authoritative sequence directly, which is
// meant for bulk external loads; papers created with WithStrictWrites
// reject it instead.
func (p *Paper) SetBlocks(seq block.Sequence) error {
	if p.closed {
		return ErrClosed
	}
	if p.tx != nil {
		return p.tx.SetBlocks(seq)
	}
	if p.strict {
		return ErrOutsideTransaction
	}

	next := seq.Clone().Normalize()
	if dup, ok := next.Validate(); !ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, dup)
	}
	p.logger.Debug().Int("blocks", len(next)).Msg("sequence replaced outside transaction")
	p.blocks = next
	return nil
}

// Transaction runs fn synchronously. Every write fn makes through the Tx
// (or through SetBlocks) is coalesced into the sequence visible after fn
// returns. No listener is notified. Nested calls join the running
// transaction. If fn panics the staged writes are discarded and the panic
// is propagated.
//
// Transaction returns p so a caller may chain Commit.
func (p *Paper) Transaction(fn func(tx *Tx)) *Paper {
	if p.closed {
		return p
	}
	if p.tx != nil {
		fn(p.tx)
		return p
	}

	tx := &Tx{paper: p}
	p.tx = tx
	committed := false
	defer func() {
		p.tx = nil
		if !committed {
			p.pendingCommit = false
			p.logger.Warn().Msg("transaction aborted, staged writes discarded")
		}
	}()

	fn(tx)

	if tx.staged != nil {
		p.blocks = tx.staged
		p.logger.Debug().Int("writes", tx.writes).Int("blocks", len(p.blocks)).Msg("transaction applied")
	}
	committed = true
	p.tx = nil

	if p.pendingCommit {
		p.pendingCommit = false
		p.Commit()
	}
	return p
}

// Commit notifies every listener, in registration order, with the current
// sequence. A Commit issued inside a transaction is deferred until the
// outermost transaction returns.
func (p *Paper) Commit() {
	if p.closed {
		return
	}
	if p.tx != nil {
		p.pendingCommit = true
		return
	}

	p.revision++
	p.committed = p.blocks.Clone()

	subs := make([]*Subscription, len(p.subs))
	copy(subs, p.subs)
	hooks := make([]func(Change), len(p.afterCommit))
	copy(hooks, p.afterCommit)

	p.logger.Debug().Uint64("revision", p.revision).Int("listeners", len(subs)).Msg("commit")

	for _, sub := range subs {
		if !sub.active {
			continue
		}
		sub.listener(Change{Blocks: p.committed.Clone(), Revision: p.revision})
	}
	for _, hook := range hooks {
		hook(Change{Blocks: p.committed.Clone(), Revision: p.revision})
	}
}

// AfterCommit registers a hook that runs after every listener of each
// commit. Hooks cannot be removed; they live as long as the paper.
func (p *Paper) AfterCommit(fn func(Change)) {
	p.afterCommit = append(p.afterCommit, fn)
}

// Close clears every listener and hook. Further writes fail and commits
// are ignored.
func (p *Paper) Close() {
	if p.closed {
		return
	}
	p.UnsubscribeAll()
	p.afterCommit = nil
	p.closed = true
}

// Find returns the block with the given ID.
func (p *Paper) Find(id block.ID) (block.Block, bool) {
	seq := p.current()
	if i := seq.IndexOf(id); i >= 0 {
		return seq[i].Clone(), true
	}
	return block.Block{}, false
}

// Get is like Find but returns ErrBlockNotFound for a missing ID.
func (p *Paper) Get(id block.ID) (block.Block, error) {
	b, ok := p.Find(id)
	if !ok {
		return block.Block{}, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return b, nil
}

// IndexOf returns the position of a block, or -1.
func (p *Paper) IndexOf(id block.ID) int {
	return p.current().IndexOf(id)
}

// FindGroupedBlocks returns the block with the given ID followed by its
// indentation-defined group, in sequence order. The result is empty when
// the ID is not found.
func (p *Paper) FindGroupedBlocks(id block.ID) block.Sequence {
	g := Group(p.current(), id)
	if g == nil {
		return block.Sequence{}
	}
	return g.Clone()
}

// FindNextBlock returns the block following id.
func (p *Paper) FindNextBlock(id block.ID) (block.Block, bool) {
	seq := p.current()
	i := seq.IndexOf(id)
	if i < 0 || i+1 >= len(seq) {
		return block.Block{}, false
	}
	return seq[i+1].Clone(), true
}

// FindPrevBlock returns the block preceding id.
func (p *Paper) FindPrevBlock(id block.ID) (block.Block, bool) {
	seq := p.current()
	i := seq.IndexOf(id)
	if i <= 0 {
		return block.Block{}, false
	}
	return seq[i-1].Clone(), true
}
