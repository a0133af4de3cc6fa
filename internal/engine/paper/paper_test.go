package paper_test

import (
	"errors"
	"testing"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/paper"
)

func seq(specs ...any) block.Sequence {
	// specs are (id, indent, text) triples
	out := make(block.Sequence, 0, len(specs)/3)
	for i := 0; i+2 < len(specs); i += 3 {
		out = append(out, block.Block{
			ID:     block.ID(specs[i].(string)),
			Type:   "paragraph",
			Indent: specs[i+1].(int),
			Text:   block.StringPtr(specs[i+2].(string)),
		})
	}
	return out
}

func ids(s block.Sequence) string {
	out := ""
	for _, b := range s {
		out += string(b.ID)
	}
	return out
}

func mustPaper(t *testing.T, s block.Sequence, opts ...paper.Option) *paper.Paper {
	t.Helper()
	p, err := paper.New(s, opts...)
	if err != nil {
		t.Fatalf("paper.New: %v", err)
	}
	return p
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := paper.New(seq("A", 0, "x", "A", 0, "y"))
	if !errors.Is(err, paper.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestNewNormalizes(t *testing.T) {
	p := mustPaper(t, block.Sequence{{Type: "paragraph", Indent: 42}})

	b := p.Blocks()[0]
	if b.ID.IsZero() {
		t.Error("expected id to be assigned")
	}
	if b.Indent != block.MaxIndent {
		t.Errorf("expected indent %d, got %d", block.MaxIndent, b.Indent)
	}
}

func TestBlocksIsSnapshot(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "foo"))

	s := p.Blocks()
	*s[0].Text = "mutated"
	s[0].Indent = 5

	b, _ := p.Find("A")
	if b.TextValue() != "foo" || b.Indent != 0 {
		t.Errorf("expected paper to be unaffected by snapshot mutation, got %s", b)
	}
}

func TestTransactionDoesNotNotify(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "foo"))

	calls := 0
	p.Subscribe(func(paper.Change) { calls++ })

	p.Transaction(func(tx *paper.Tx) {
		s := tx.Blocks()
		*s[0].Text = "bar"
		if err := tx.SetBlocks(s); err != nil {
			t.Fatalf("SetBlocks: %v", err)
		}
	})

	if calls != 0 {
		t.Errorf("expected no notification before commit, got %d", calls)
	}
	if b, _ := p.Find("A"); b.TextValue() != "bar" {
		t.Errorf("expected staged write to be visible after transaction, got %q", b.TextValue())
	}
	if c := p.Committed(); c[0].TextValue() != "foo" {
		t.Errorf("expected committed snapshot unchanged, got %q", c[0].TextValue())
	}

	p.Commit()

	if calls != 1 {
		t.Errorf("expected one notification after commit, got %d", calls)
	}
	if c := p.Committed(); c[0].TextValue() != "bar" {
		t.Errorf("expected committed snapshot updated, got %q", c[0].TextValue())
	}
}

func TestTransactionCoalescesWrites(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	p.Transaction(func(tx *paper.Tx) {
		_ = tx.SetBlocks(seq("A", 0, "a", "B", 0, "b"))
		_ = tx.SetBlocks(append(tx.Blocks(), seq("C", 0, "c")...))
	})

	if got := ids(p.Blocks()); got != "ABC" {
		t.Errorf("expected ABC, got %s", got)
	}
}

func TestSetBlocksInsideTransactionStages(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	var inside string
	p.Transaction(func(tx *paper.Tx) {
		_ = p.SetBlocks(seq("B", 0, "b"))
		inside = ids(p.Blocks())
	})

	if inside != "B" {
		t.Errorf("expected staged write visible inside transaction, got %s", inside)
	}
	if got := ids(p.Blocks()); got != "B" {
		t.Errorf("expected B after transaction, got %s", got)
	}
}

func TestSetBlocksRejectsDuplicates(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	p.Transaction(func(tx *paper.Tx) {
		err := tx.SetBlocks(seq("A", 0, "a", "A", 1, "b"))
		if !errors.Is(err, paper.ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID, got %v", err)
		}
	})

	if p.Len() != 1 {
		t.Errorf("expected sequence unchanged, got %d blocks", p.Len())
	}
}

func TestSetBlocksOutsideTransaction(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))
	if err := p.SetBlocks(seq("X", 0, "x")); err != nil {
		t.Fatalf("expected bulk load to succeed, got %v", err)
	}
	if got := ids(p.Blocks()); got != "X" {
		t.Errorf("expected X, got %s", got)
	}

	strict := mustPaper(t, seq("A", 0, "a"), paper.WithStrictWrites())
	if err := strict.SetBlocks(seq("X", 0, "x")); !errors.Is(err, paper.ErrOutsideTransaction) {
		t.Errorf("expected ErrOutsideTransaction, got %v", err)
	}
}

func TestTransactionPanicDiscardsWrites(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		p.Transaction(func(tx *paper.Tx) {
			_ = tx.SetBlocks(seq("B", 0, "b"))
			panic("boom")
		})
	}()

	if got := ids(p.Blocks()); got != "A" {
		t.Errorf("expected A after aborted transaction, got %s", got)
	}
	if p.InTransaction() {
		t.Error("expected transaction to be cleared")
	}
}

func TestNestedTransactionJoins(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	p.Transaction(func(outer *paper.Tx) {
		p.Transaction(func(inner *paper.Tx) {
			if inner != outer {
				t.Error("expected nested transaction to reuse the outer Tx")
			}
			_ = inner.SetBlocks(seq("B", 0, "b"))
		})
		if got := ids(outer.Blocks()); got != "B" {
			t.Errorf("expected inner write visible to outer, got %s", got)
		}
	})
}

func TestCommitInsideTransactionIsDeferred(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	var seen []string
	p.Subscribe(func(c paper.Change) { seen = append(seen, ids(c.Blocks)) })

	p.Transaction(func(tx *paper.Tx) {
		_ = tx.SetBlocks(seq("B", 0, "b"))
		p.Commit()
		if len(seen) != 0 {
			t.Error("expected no notification inside transaction")
		}
		_ = tx.SetBlocks(seq("C", 0, "c"))
	})

	if len(seen) != 1 || seen[0] != "C" {
		t.Errorf("expected single notification with C, got %v", seen)
	}
}

func TestMultipleTransactionsSingleCommit(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	var revisions []uint64
	p.Subscribe(func(c paper.Change) { revisions = append(revisions, c.Revision) })

	p.Transaction(func(tx *paper.Tx) { _ = tx.SetBlocks(seq("B", 0, "b")) })
	p.Transaction(func(tx *paper.Tx) { _ = tx.SetBlocks(seq("C", 0, "c")) }).Commit()

	if len(revisions) != 1 || revisions[0] != 1 {
		t.Errorf("expected one notification at revision 1, got %v", revisions)
	}
	if p.Revision() != 1 {
		t.Errorf("expected revision 1, got %d", p.Revision())
	}
}

func TestListenerOrderAndAfterCommit(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	var order []string
	p.AfterCommit(func(paper.Change) { order = append(order, "hook") })
	p.Subscribe(func(paper.Change) { order = append(order, "first") })
	p.Subscribe(func(paper.Change) { order = append(order, "second") })

	p.Commit()

	want := []string{"first", "second", "hook"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	a, b := 0, 0
	subA := p.Subscribe(func(paper.Change) { a++ })
	p.Subscribe(func(paper.Change) { b++ })

	subA.Unsubscribe()
	subA.Unsubscribe()
	p.Commit()

	if a != 0 || b != 1 {
		t.Errorf("expected a=0 b=1, got a=%d b=%d", a, b)
	}
	if subA.Active() {
		t.Error("expected subscription to be inactive")
	}

	p.Unsubscribe(nil)
	p.Commit()

	if b != 1 {
		t.Errorf("expected no notification after clearing listeners, got b=%d", b)
	}
	if p.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", p.ListenerCount())
	}
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	calls := 0
	var sub *paper.Subscription
	sub = p.Subscribe(func(paper.Change) {
		calls++
		sub.Unsubscribe()
	})

	p.Commit()
	p.Commit()

	if calls != 1 {
		t.Errorf("expected exactly one call, got %d", calls)
	}
}

func TestClose(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	calls := 0
	p.Subscribe(func(paper.Change) { calls++ })
	p.Close()
	p.Commit()

	if calls != 0 {
		t.Errorf("expected no notifications after close, got %d", calls)
	}
	if err := p.SetBlocks(nil); !errors.Is(err, paper.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestFindNextPrev(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a", "B", 0, "b", "C", 0, "c"))

	if n, ok := p.FindNextBlock("A"); !ok || n.ID != "B" {
		t.Errorf("expected B after A, got %v %v", n.ID, ok)
	}
	if _, ok := p.FindNextBlock("C"); ok {
		t.Error("expected no block after C")
	}
	if pr, ok := p.FindPrevBlock("C"); !ok || pr.ID != "B" {
		t.Errorf("expected B before C, got %v %v", pr.ID, ok)
	}
	if _, ok := p.FindPrevBlock("A"); ok {
		t.Error("expected no block before A")
	}
	if _, ok := p.FindNextBlock("missing"); ok {
		t.Error("expected missing id to have no next block")
	}
}

func TestGet(t *testing.T) {
	p := mustPaper(t, seq("A", 0, "a"))

	if _, err := p.Get("nope"); !errors.Is(err, paper.ErrBlockNotFound) {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}
