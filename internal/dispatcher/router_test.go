package dispatcher_test

import (
	"testing"

	"github.com/dshills/paper/internal/dispatcher"
	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
)

func TestRouterRoute(t *testing.T) {
	r := dispatcher.NewRouter()

	ns := handler.NewBaseNamespaceHandler("view")
	ns.Register("view.top", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("top")
	})
	r.RegisterNamespace("view", ns)

	if h := r.Route("view.top"); h == nil {
		t.Fatal("expected handler for view.top")
	} else if got := h.Handle(input.NewAction("view.top", input.SourceAPI), execctx.New()).Message; got != "top" {
		t.Errorf("expected top, got %q", got)
	}

	for _, name := range []string{"view.bottom", "block.top", "top"} {
		if r.CanRoute(name) {
			t.Errorf("expected %q not to route", name)
		}
	}

	r.SetFallback(named("fallback", 0))
	if !r.CanRoute("block.top") {
		t.Error("expected fallback to accept unmatched action")
	}

	r.UnregisterNamespace("view")
	if r.HasNamespace("view") {
		t.Error("expected namespace to be removed")
	}
}

func TestRouterNamespaces(t *testing.T) {
	r := dispatcher.NewRouter()
	for _, ns := range []string{"view", "block", "editor"} {
		r.RegisterNamespace(ns, handler.NewBaseNamespaceHandler(ns))
	}

	got := r.Namespaces()
	want := []string{"block", "editor", "view"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if r.GetNamespaceHandler("block") == nil {
		t.Error("expected block namespace handler")
	}
}

func TestActionNameHelpers(t *testing.T) {
	tests := []struct {
		full      string
		namespace string
		action    string
	}{
		{"block.indent", "block", "indent"},
		{"script.hello.world", "script", "hello.world"},
		{"quit", "", "quit"},
	}

	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			if got := dispatcher.ExtractNamespace(tt.full); got != tt.namespace {
				t.Errorf("expected namespace %q, got %q", tt.namespace, got)
			}
			if got := dispatcher.ExtractActionName(tt.full); got != tt.action {
				t.Errorf("expected action %q, got %q", tt.action, got)
			}
			if got := dispatcher.BuildActionName(tt.namespace, tt.action); got != tt.full {
				t.Errorf("expected rebuilt %q, got %q", tt.full, got)
			}
		})
	}
}
