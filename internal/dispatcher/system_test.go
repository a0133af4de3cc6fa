package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/paper/internal/dispatcher"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/handlers/blocks"
	"github.com/dshills/paper/internal/dispatcher/handlers/editor"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/loop"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

type host struct {
	sys *dispatcher.System
	p   *paper.Paper
	tr  *cursor.Tracker
	lp  *loop.Loop
}

func newHost(t *testing.T, texts ...string) *host {
	t.Helper()
	h := &host{
		sys: dispatcher.NewSystemWithDefaults(),
		p:   newPaper(t, texts...),
		tr:  cursor.NewTracker(),
	}
	h.lp = loop.New(h.p)
	h.tr.Sync(h.p.Blocks())
	h.sys.SetSubsystems(h.p, schema.Builtin(), h.tr, h.lp, &fakeRenderer{})
	return h
}

// press dispatches an action and runs one frame: commit, cursor sync and
// the after-render queue.
func (h *host) press(a input.Action) handler.Result {
	r := h.sys.Dispatch(a)
	h.p.Commit()
	h.tr.Sync(h.p.Committed())
	h.lp.Drain()
	return r
}

func key(name string) input.Action {
	return input.NewAction(name, input.SourceKeyboard)
}

func texts(p *paper.Paper) []string {
	var out []string
	for _, b := range p.Blocks() {
		out = append(out, b.TextValue())
	}
	return out
}

func TestSystemTypingSession(t *testing.T) {
	h := newHost(t, "hello")
	h.tr.Focus("A", 2)

	h.press(key(editor.ActionEnter))
	if got := texts(h.p); len(got) != 2 || got[0] != "he" || got[1] != "llo" {
		t.Fatalf("expected [he llo], got %v", got)
	}
	second := h.p.Blocks()[1].ID
	if c := h.tr.Get(); c.Block != second || c.Offset() != 0 {
		t.Fatalf("expected caret at start of the new block, got %s", c)
	}

	h.press(key(editor.ActionInsertText).WithText("X"))
	if c := h.tr.Get(); c.Offset() != 1 {
		t.Errorf("expected caret after inserted text, got %s", c)
	}

	h.press(key(editor.ActionBackspace))
	h.press(key(editor.ActionBackspace))

	if got := texts(h.p); len(got) != 1 || got[0] != "hello" {
		t.Fatalf("expected [hello], got %v", got)
	}
	if c := h.tr.Get(); c.Block != "A" || c.Offset() != 2 {
		t.Errorf("expected caret at the join A@2, got %s", c)
	}

	log := h.sys.ChangeLog().Changes()
	if len(log) != 4 {
		t.Fatalf("expected 4 recorded changes, got %d", len(log))
	}
	if log[0].Action != editor.ActionEnter || log[3].Action != editor.ActionBackspace {
		t.Errorf("expected enter first and backspace last, got %s and %s", log[0].Action, log[3].Action)
	}
}

func TestSystemIndentGroup(t *testing.T) {
	h := newHost(t, "a", "b", "c")
	h.tr.Focus("B", 0)

	h.press(key(editor.ActionTab))
	h.tr.Focus("A", 0)
	h.press(input.NewAction(blocks.ActionIndent, input.SourceAPI).WithBlock("C"))

	want := []int{0, 1, 1}
	for i, b := range h.p.Blocks() {
		if b.Indent != want[i] {
			t.Errorf("%s: expected indent %d, got %d", b.ID, want[i], b.Indent)
		}
	}
}

func TestSystemTargetHookCancelsStaleBlock(t *testing.T) {
	h := newHost(t, "a")

	r := h.sys.Dispatch(input.NewAction(blocks.ActionIndent, input.SourceAPI).WithBlock("gone"))
	if r.Status != handler.StatusCancelled {
		t.Errorf("expected cancelled, got %s", r.Status)
	}
	if !errors.Is(r.Error, dispatcher.ErrActionCancelled) {
		t.Errorf("expected ErrActionCancelled, got %v", r.Error)
	}
	if h.sys.Metrics().TotalCancelled() != 1 {
		t.Errorf("expected one cancelled dispatch, got %d", h.sys.Metrics().TotalCancelled())
	}
}

func TestSystemDispatchBatch(t *testing.T) {
	h := newHost(t, "a", "b")
	h.tr.Focus("B", 0)

	actions := []input.Action{
		key(editor.ActionTab),
		input.NewAction("nope.nothing", input.SourceAPI),
		key(editor.ActionShiftTab),
	}

	if got := h.sys.DispatchBatch(actions, true); len(got) != 2 {
		t.Errorf("expected batch to stop after the failure, got %d results", len(got))
	}
	if got := h.sys.DispatchBatch(actions, false); len(got) != 3 {
		t.Errorf("expected full batch, got %d results", len(got))
	}
}

func TestSystemMoveByDrag(t *testing.T) {
	h := newHost(t, "a", "b", "c")

	drag := func(name string) input.Action {
		a := input.NewAction(name, input.SourceMouse).WithBlock("A")
		a.Args.Dest = "C"
		return a
	}

	h.press(input.NewAction(editor.ActionDragStart, input.SourceMouse).WithBlock("A"))
	h.press(drag(editor.ActionDragOver))

	ind, active := h.sys.Drag().Indicator()
	if !active || !ind.Allowed || ind.Over != "C" {
		t.Fatalf("expected allowed drop over C, got %+v", ind)
	}

	h.press(drag(editor.ActionDrop))
	if _, active := h.sys.Drag().Indicator(); active {
		t.Error("expected drag to end on drop")
	}

	var order string
	for _, b := range h.p.Blocks() {
		order += string(b.ID)
	}
	if order != "BCA" {
		t.Errorf("expected BCA, got %s", order)
	}
}
