package dispatcher_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/paper/internal/dispatcher"
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/loop"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

type fakeRenderer struct {
	redraws  int
	scrolled int
	revealed []block.ID
}

func (r *fakeRenderer) Redraw()            { r.redraws++ }
func (r *fakeRenderer) ScrollBy(lines int) { r.scrolled += lines }
func (r *fakeRenderer) Reveal(id block.ID) { r.revealed = append(r.revealed, id) }

func newPaper(t *testing.T, texts ...string) *paper.Paper {
	t.Helper()
	seq := make(block.Sequence, 0, len(texts))
	for i, text := range texts {
		b := block.New(schema.TypeParagraph, text, 0)
		b.ID = block.ID(string(rune('A' + i)))
		seq = append(seq, b)
	}
	p, err := paper.New(seq)
	if err != nil {
		t.Fatalf("paper.New: %v", err)
	}
	return p
}

func wired(t *testing.T, texts ...string) (*dispatcher.Dispatcher, *paper.Paper, *cursor.Tracker) {
	t.Helper()
	p := newPaper(t, texts...)
	tr := cursor.NewTracker()
	tr.Sync(p.Blocks())

	d := dispatcher.NewWithDefaults()
	d.SetPaper(p)
	d.SetSchema(schema.Builtin())
	d.SetCursor(tr)
	return d, p, tr
}

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d.Registry() == nil {
		t.Error("expected non-nil registry")
	}
	if d.Router() == nil {
		t.Error("expected non-nil router")
	}
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	if d.Results() != nil {
		t.Error("expected nil results channel without async dispatch")
	}
}

func TestNewWithMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	if d.Metrics() == nil {
		t.Error("expected non-nil metrics when enabled")
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(input.NewAction("unknown.action", input.SourceAPI))
	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}

	result = d.Dispatch(input.Action{})
	if !errors.Is(result.Error, dispatcher.ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", result.Error)
	}
}

func TestRegisterHandlerFunc(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	called := false
	d.RegisterHandlerFunc("test.action", func(input.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	if !d.CanDispatch("test.action") {
		t.Error("expected action to be dispatchable")
	}
	if r := d.Dispatch(input.NewAction("test.action", input.SourceAPI)); !r.IsOK() {
		t.Errorf("expected OK, got %s", r.Status)
	}
	if !called {
		t.Error("expected handler to be called")
	}

	d.UnregisterHandler("test.action")
	if d.CanDispatch("test.action") {
		t.Error("expected action to be gone")
	}
}

func TestNamespaceBeatsRegistry(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	ns := handler.NewBaseNamespaceHandler("test")
	ns.Register("test.run", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("namespace")
	})
	d.RegisterNamespace("test", ns)
	d.RegisterHandlerFunc("test.run", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("registry")
	})
	d.RegisterHandlerFunc("test.other", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("registry")
	})

	if r := d.Dispatch(input.NewAction("test.run", input.SourceAPI)); r.Message != "namespace" {
		t.Errorf("expected namespace handler, got %q", r.Message)
	}
	if r := d.Dispatch(input.NewAction("test.other", input.SourceAPI)); r.Message != "registry" {
		t.Errorf("expected registry fallback, got %q", r.Message)
	}
}

func TestBuildContextTarget(t *testing.T) {
	d, _, tr := wired(t, "abc", "def")
	tr.Set(cursor.At("A", 2))

	var got *execctx.ExecutionContext
	d.RegisterHandlerFunc("test.ctx", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		got = ctx
		return handler.Success()
	})

	tests := []struct {
		name   string
		action input.Action
		block  block.ID
		sel    command.Selection
	}{
		{"caret", input.NewAction("test.ctx", input.SourceKeyboard), "A", command.Caret(2)},
		{"other block", input.NewAction("test.ctx", input.SourceMouse).WithBlock("B"), "B", command.Caret(0)},
		{"same block keeps selection", input.NewAction("test.ctx", input.SourceMouse).WithBlock("A"), "A", command.Caret(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.Dispatch(tt.action)
			if got.Block != tt.block || got.Selection != tt.sel {
				t.Errorf("expected %s %+v, got %s %+v", tt.block, tt.sel, got.Block, got.Selection)
			}
		})
	}

	a := input.NewAction("test.ctx", input.SourceMouse).WithBlock("B")
	a.Args.Offset = 1
	d.Dispatch(a)
	if got.Selection != command.Caret(1) {
		t.Errorf("expected offset override, got %+v", got.Selection)
	}

	d.Dispatch(input.NewAction("test.ctx", input.SourceKeyboard).WithCount(4))
	if got.GetCount() != 4 || got.Source != input.SourceKeyboard {
		t.Errorf("expected count 4 from keyboard, got %d from %s", got.GetCount(), got.Source)
	}
}

func TestPreDispatchHookCancel(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	called := false
	d.RegisterHandlerFunc("test.action", func(input.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(*input.Action, *execctx.ExecutionContext) bool {
		return false
	}))

	r := d.Dispatch(input.NewAction("test.action", input.SourceAPI))
	if r.Status != handler.StatusCancelled {
		t.Errorf("expected cancelled, got %s", r.Status)
	}
	if !errors.Is(r.Error, dispatcher.ErrActionCancelled) {
		t.Errorf("expected ErrActionCancelled, got %v", r.Error)
	}
	if called {
		t.Error("expected handler not to run")
	}
}

func TestPreDispatchHookRewrite(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	var name string
	d.RegisterHandlerFunc("test.b", func(a input.Action, _ *execctx.ExecutionContext) handler.Result {
		name = a.Name
		return handler.Success()
	})
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(a *input.Action, _ *execctx.ExecutionContext) bool {
		if a.Name == "test.a" {
			a.Name = "test.b"
		}
		return true
	}))

	d.Dispatch(input.NewAction("test.a", input.SourceAPI))
	if name != "test.b" {
		t.Errorf("expected rewritten action, got %q", name)
	}
}

func TestPostDispatchHook(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.action", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})

	var seen handler.ResultStatus = handler.StatusError
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(_ *input.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		seen = r.Status
		r.Message = "observed"
	}))

	r := d.Dispatch(input.NewAction("test.action", input.SourceAPI))
	if seen != handler.StatusOK {
		t.Errorf("expected hook to see OK, got %s", seen)
	}
	if r.Message != "observed" {
		t.Errorf("expected hook to modify result, got %q", r.Message)
	}
}

func TestPanicRecovery(t *testing.T) {
	d, p, _ := wired(t, "a")
	d.RegisterHandlerFunc("test.panic", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		ctx.Paper.Transaction(func(tx *paper.Tx) {
			_ = tx.SetBlocks(nil)
			panic("boom")
		})
		return handler.Success()
	})

	r := d.Dispatch(input.NewAction("test.panic", input.SourceAPI))
	if !errors.Is(r.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", r.Error)
	}
	if p.Len() != 1 {
		t.Errorf("expected staged writes of the panicking handler to be discarded, got %d blocks", p.Len())
	}
}

func TestFocusAppliedImmediately(t *testing.T) {
	d, _, tr := wired(t, "abc", "def")
	r := &fakeRenderer{}
	d.SetRenderer(r)
	d.RegisterHandlerFunc("test.focus", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithFocus(handler.FocusEndOf("B"))
	})

	d.Dispatch(input.NewAction("test.focus", input.SourceAPI))

	if c := tr.Get(); c.Block != "B" || c.Offset() != 3 {
		t.Errorf("expected caret at B@3, got %s", c)
	}
	if len(r.revealed) != 1 || r.revealed[0] != "B" {
		t.Errorf("expected B revealed, got %v", r.revealed)
	}
}

func TestErrorResultKeepsCaret(t *testing.T) {
	d, _, tr := wired(t, "abc", "def")
	d.RegisterHandlerFunc("test.fail", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Errorf("nope").WithFocus(handler.FocusStartOf("B"))
	})

	d.Dispatch(input.NewAction("test.fail", input.SourceAPI))

	if c := tr.Get(); c.Block != "A" {
		t.Errorf("expected caret to stay on A, got %s", c)
	}
}

func TestFocusAfterRender(t *testing.T) {
	d, p, tr := wired(t, "abc", "def")
	lp := loop.New(p)
	d.SetLoop(lp)
	d.RegisterHandlerFunc("test.deferred", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithFocusAfterRender(handler.FocusStartOf("B"))
	})

	d.Dispatch(input.NewAction("test.deferred", input.SourceAPI))
	lp.Drain()
	if c := tr.Get(); c.Block != "A" {
		t.Fatalf("expected caret to wait for the commit, got %s", c)
	}

	p.Commit()
	lp.Drain()
	if c := tr.Get(); c.Block != "B" || c.Offset() != 0 {
		t.Errorf("expected caret at B@0 after render, got %s", c)
	}
}

func TestFocusAfterRenderWithoutLoop(t *testing.T) {
	d, _, tr := wired(t, "abc", "def")
	d.RegisterHandlerFunc("test.deferred", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithFocusAfterRender(handler.FocusEndOf("B"))
	})

	d.Dispatch(input.NewAction("test.deferred", input.SourceAPI))
	if c := tr.Get(); c.Block != "B" || c.Offset() != 3 {
		t.Errorf("expected immediate focus at B@3, got %s", c)
	}
}

func TestViewUpdates(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	r := &fakeRenderer{}
	d.SetRenderer(r)
	d.RegisterHandlerFunc("test.view", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithScroll(3).WithReveal("X").WithRedraw()
	})

	d.Dispatch(input.NewAction("test.view", input.SourceAPI))

	if r.scrolled != 3 || r.redraws != 1 || len(r.revealed) != 1 || r.revealed[0] != "X" {
		t.Errorf("expected scroll 3, one redraw and reveal X, got %+v", r)
	}
}

func TestMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("a.ok", func(input.Action, *execctx.ExecutionContext) handler.Result { return handler.Success() })
	d.RegisterHandlerFunc("a.noop", func(input.Action, *execctx.ExecutionContext) handler.Result { return handler.NoOp() })
	d.RegisterHandlerFunc("b.fail", func(input.Action, *execctx.ExecutionContext) handler.Result { return handler.Errorf("x") })

	for _, name := range []string{"a.ok", "a.ok", "a.noop", "b.fail", "c.missing"} {
		d.Dispatch(input.NewAction(name, input.SourceAPI))
	}

	m := d.Metrics()
	if m.TotalDispatches() != 5 {
		t.Errorf("expected 5 dispatches, got %d", m.TotalDispatches())
	}
	if m.TotalErrors() != 2 {
		t.Errorf("expected 2 errors, got %d", m.TotalErrors())
	}
	if m.TotalNoOps() != 1 {
		t.Errorf("expected 1 no-op, got %d", m.TotalNoOps())
	}
	if s := m.ActionStats("a.ok"); s == nil || s.DispatchCount != 2 {
		t.Errorf("expected a.ok dispatched twice, got %+v", s)
	}
	if top := m.MostFrequent(1); len(top) != 1 || top[0].Name != "a.ok" {
		t.Errorf("expected a.ok most frequent, got %+v", top)
	}
	ns := m.Namespaces()
	if len(ns) != 3 || ns[0].Namespace != "a" || ns[0].DispatchCount != 3 || ns[0].NoOpCount != 1 {
		t.Errorf("expected namespace a with 3 dispatches, got %+v", ns)
	}

	m.Reset()
	if m.TotalDispatches() != 0 {
		t.Error("expected reset to clear counters")
	}
}

func TestEnqueueRequiresAsync(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	if err := d.Enqueue(input.NewAction("x.y", input.SourceAPI)); !errors.Is(err, dispatcher.ErrAsyncNotEnabled) {
		t.Errorf("expected ErrAsyncNotEnabled, got %v", err)
	}
}

func TestAsyncDispatchRunsOnLoop(t *testing.T) {
	p := newPaper(t, "a")
	lp := loop.New(p)
	d := dispatcher.New(dispatcher.DefaultConfig().WithAsyncDispatch(4))
	d.SetPaper(p)
	d.SetLoop(lp)
	d.RegisterHandlerFunc("test.async", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("ran")
	})
	d.Start()
	defer d.Stop()

	if err := d.Enqueue(input.NewAction("test.async", input.SourceAPI)); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case r := <-d.Results():
			if r.Message != "ran" {
				t.Errorf("expected ran, got %q", r.Message)
			}
			return
		case <-lp.Wake():
			lp.Drain()
		case <-deadline:
			t.Fatal("timed out waiting for async result")
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithAsyncDispatch(1))
	d.Start()
	d.Stop()
	d.Stop()

	if err := d.Enqueue(input.NewAction("x.y", input.SourceAPI)); !errors.Is(err, dispatcher.ErrDispatcherStopped) {
		t.Errorf("expected ErrDispatcherStopped, got %v", err)
	}
}
