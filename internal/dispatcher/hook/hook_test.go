package hook_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/hook"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/input"
)

// recorder appends its name to log on every call and cancels when allow
// is false.
type recorder struct {
	name     string
	priority int
	allow    bool
	log      *[]string
}

func (r *recorder) Name() string  { return r.name }
func (r *recorder) Priority() int { return r.priority }

func (r *recorder) PreDispatch(*input.Action, *execctx.ExecutionContext) bool {
	*r.log = append(*r.log, r.name)
	return r.allow
}

func (r *recorder) PostDispatch(*input.Action, *execctx.ExecutionContext, *handler.Result) {
	*r.log = append(*r.log, r.name)
}

func TestManagerPriorityOrdering(t *testing.T) {
	m := hook.NewManager()
	var order []string

	m.Register(&recorder{name: "low", priority: 10, allow: true, log: &order})
	m.Register(&recorder{name: "high", priority: 100, allow: true, log: &order})
	m.Register(&recorder{name: "mid", priority: 50, allow: true, log: &order})

	if name := m.RunPreDispatch(&input.Action{Name: "x"}, execctx.New()); name != "" {
		t.Errorf("expected no cancellation, got %q", name)
	}
	if strings.Join(order, ",") != "high,mid,low" {
		t.Errorf("expected high,mid,low, got %v", order)
	}

	order = nil
	result := handler.Success()
	m.RunPostDispatch(&input.Action{Name: "x"}, execctx.New(), &result)
	if strings.Join(order, ",") != "low,mid,high" {
		t.Errorf("expected low,mid,high, got %v", order)
	}
}

func TestManagerEqualPriorityKeepsOrder(t *testing.T) {
	m := hook.NewManager()
	var order []string
	m.RegisterPre(&recorder{name: "first", priority: 5, allow: true, log: &order})
	m.RegisterPre(&recorder{name: "second", priority: 5, allow: true, log: &order})

	m.RunPreDispatch(&input.Action{Name: "x"}, execctx.New())
	if strings.Join(order, ",") != "first,second" {
		t.Errorf("expected first,second, got %v", order)
	}
}

func TestManagerCancelReportsHook(t *testing.T) {
	m := hook.NewManager()
	var order []string
	m.RegisterPre(&recorder{name: "blocker", priority: 100, log: &order})
	m.RegisterPre(&recorder{name: "later", priority: 10, allow: true, log: &order})

	if name := m.RunPreDispatch(&input.Action{Name: "x"}, execctx.New()); name != "blocker" {
		t.Errorf("expected 'blocker', got %q", name)
	}
	if strings.Join(order, ",") != "blocker" {
		t.Errorf("expected hooks after a cancellation to be skipped, got %v", order)
	}
}

func TestManagerReplacesByName(t *testing.T) {
	m := hook.NewManager()
	var order []string
	m.RegisterPre(&recorder{name: "a", priority: 10, allow: true, log: &order})
	m.RegisterPre(&recorder{name: "b", priority: 15, allow: true, log: &order})
	m.RegisterPre(&recorder{name: "a", priority: 20, allow: true, log: &order})

	m.RunPreDispatch(&input.Action{Name: "x"}, execctx.New())
	if strings.Join(order, ",") != "a,b" {
		t.Errorf("expected the replacement to run once ahead of b, got %v", order)
	}
}

func TestAuditHook(t *testing.T) {
	var buf bytes.Buffer
	h := hook.NewAuditHook(zerolog.New(&buf).Level(zerolog.DebugLevel))

	action := input.NewAction("block.indent", input.SourceKeyboard)
	ctx := execctx.New()
	ctx.Block = "A"

	if !h.PreDispatch(&action, ctx) {
		t.Fatal("expected audit hook never to cancel")
	}
	result := handler.Errorf("boom")
	h.PostDispatch(&action, ctx, &result)

	out := buf.String()
	for _, want := range []string{`"action":"block.indent"`, `"source":"keyboard"`, `"dispatch failed"`, `"error":"boom"`, `"component":"dispatch"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %s, got %s", want, out)
		}
	}
}

func TestChangeLogHook(t *testing.T) {
	h := hook.NewChangeLogHook(2)
	var seen []string
	h.SetCallback(func(r hook.ChangeRecord) { seen = append(seen, r.Action) })

	dispatch := func(name string, result handler.Result) {
		action := input.NewAction(name, input.SourceKeyboard)
		h.PostDispatch(&action, execctx.New(), &result)
	}

	dispatch("block.indent", handler.Success().WithChanged("A"))
	dispatch("editor.arrowUp", handler.Success())
	dispatch("block.outdent", handler.NoOp().WithChanged("A"))
	dispatch("block.splitBlock", handler.Success().WithChanged("A", "B"))
	dispatch("block.moveTo", handler.Success().WithChanged("C"))

	changes := h.Changes()
	if len(changes) != 2 {
		t.Fatalf("expected 2 retained records, got %d", len(changes))
	}
	if changes[0].Action != "block.splitBlock" || changes[1].Action != "block.moveTo" {
		t.Errorf("expected splitBlock then moveTo, got %s then %s", changes[0].Action, changes[1].Action)
	}
	if len(changes[0].Blocks) != 2 {
		t.Errorf("expected 2 changed blocks, got %v", changes[0].Blocks)
	}
	if len(seen) != 3 {
		t.Errorf("expected callback for 3 changes, got %v", seen)
	}
	if r := h.Recent(1); len(r) != 1 || r[0].Action != "block.moveTo" {
		t.Errorf("expected most recent moveTo, got %v", r)
	}

	h.Clear()
	if len(h.Changes()) != 0 {
		t.Error("expected no changes after Clear")
	}
}

func TestCountLimitHook(t *testing.T) {
	h := hook.NewCountLimitHook(5)
	ctx := execctx.New().WithCount(50)

	h.PreDispatch(&input.Action{}, ctx)
	if ctx.Count != 5 {
		t.Errorf("expected count 5, got %d", ctx.Count)
	}
}

func TestTargetHook(t *testing.T) {
	p, err := paper.New(block.Sequence{{ID: "A", Type: "paragraph", Text: block.StringPtr("a")}})
	if err != nil {
		t.Fatalf("paper.New: %v", err)
	}
	h := hook.NewTargetHook("block")

	tests := []struct {
		name   string
		action string
		target block.ID
		want   bool
	}{
		{"existing target", "block.indent", "A", true},
		{"missing target", "block.indent", "Z", false},
		{"no target", "block.indent", "", false},
		{"other namespace", "view.scrollUp", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := execctx.New().WithPaper(p)
			ctx.Block = tt.target
			action := input.Action{Name: tt.action}
			if got := h.PreDispatch(&action, ctx); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
