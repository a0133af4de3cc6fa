package handler_test

import (
	"testing"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
	if fn.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", fn.Priority())
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestHandlerFuncWithPriority(t *testing.T) {
	fn := handler.NewHandlerFuncWithPriority(func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	}, 50)

	if fn.Priority() != 50 {
		t.Errorf("expected priority 50, got %d", fn.Priority())
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("block")

	if bnh.Namespace() != "block" {
		t.Errorf("expected namespace 'block', got %q", bnh.Namespace())
	}

	called := false
	bnh.Register("block.indent", func(input.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})
	bnh.Register("block.outdent", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})

	if !bnh.CanHandle("block.indent") {
		t.Error("expected CanHandle('block.indent') to return true")
	}
	if bnh.CanHandle("block.other") {
		t.Error("expected CanHandle('block.other') to return false")
	}

	result := bnh.HandleAction(input.Action{Name: "block.indent"}, execctx.New())
	if !called {
		t.Error("expected action handler to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}

	if got := bnh.Actions(); len(got) != 2 || got[0] != "block.indent" || got[1] != "block.outdent" {
		t.Errorf("expected sorted actions, got %v", got)
	}

	bnh.Unregister("block.outdent")
	if bnh.CanHandle("block.outdent") {
		t.Error("expected unregistered action to be rejected")
	}
}

func TestBaseNamespaceHandlerUnknownAction(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("test")

	result := bnh.HandleAction(input.Action{Name: "test.unknown"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for unknown action, got %v", result.Status)
	}
}

func TestNamespaceAdapter(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("test")
	bnh.Register("test.action", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("handled")
	})

	adapter := handler.NewNamespaceAdapter(bnh)

	if !adapter.CanHandle("test.action") {
		t.Error("expected adapter.CanHandle('test.action') to return true")
	}
	if adapter.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", adapter.Priority())
	}

	result := adapter.Handle(input.Action{Name: "test.action"}, execctx.New())
	if result.Message != "handled" {
		t.Errorf("expected message 'handled', got %q", result.Message)
	}
}
