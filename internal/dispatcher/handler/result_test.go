package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusCancelled, "cancelled"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, expected %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestResultBuilders(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		result  handler.Result
		status  handler.ResultStatus
		message string
	}{
		{"success", handler.Success(), handler.StatusOK, ""},
		{"success message", handler.SuccessWithMessage("done"), handler.StatusOK, "done"},
		{"noop", handler.NoOp(), handler.StatusNoOp, ""},
		{"noop message", handler.NoOpWithMessage("nothing"), handler.StatusNoOp, "nothing"},
		{"error", handler.Error(errBoom), handler.StatusError, ""},
		{"errorf", handler.Errorf("bad %d", 1), handler.StatusError, ""},
		{"cancelled", handler.CancelledWithMessage("stop"), handler.StatusCancelled, "stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Status != tt.status {
				t.Errorf("expected %v, got %v", tt.status, tt.result.Status)
			}
			if tt.result.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.result.Message)
			}
		})
	}

	if r := handler.Error(errBoom); !errors.Is(r.Error, errBoom) || !r.IsError() {
		t.Errorf("expected wrapped error, got %v", r.Error)
	}
	if r := handler.Errorf("bad %d", 1); r.Error == nil || r.Error.Error() != "bad 1" {
		t.Errorf("expected 'bad 1', got %v", r.Error)
	}
}

func TestResultFocus(t *testing.T) {
	r := handler.Success().WithFocus(handler.FocusEndOf("A"))
	if r.Focus == nil || r.Focus.Block != "A" || r.Focus.Placement != handler.FocusEnd {
		t.Fatalf("expected focus at end of A, got %+v", r.Focus)
	}
	if r.Focus.AfterRender {
		t.Error("expected immediate focus")
	}

	r = handler.Success().WithFocusAfterRender(handler.FocusStartOf("B"))
	if r.Focus == nil || !r.Focus.AfterRender {
		t.Errorf("expected deferred focus, got %+v", r.Focus)
	}
}

func TestFocusResolve(t *testing.T) {
	seq := block.Sequence{
		{ID: "A", Type: "paragraph", Text: block.StringPtr("hello")},
		{ID: "D", Type: "divider"},
	}

	tests := []struct {
		name   string
		focus  handler.Focus
		ok     bool
		offset int
	}{
		{"start", handler.FocusStartOf("A"), true, 0},
		{"end", handler.FocusEndOf("A"), true, 5},
		{"offset", handler.FocusOffset("A", 2), true, 2},
		{"offset clamped", handler.FocusOffset("A", 40), true, 5},
		{"structural end", handler.FocusEndOf("D"), true, 0},
		{"all", handler.FocusAllOf("A"), true, 5},
		{"missing", handler.FocusStartOf("Z"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := tt.focus.Resolve(seq)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && (c.Block != tt.focus.Block || c.Offset() != tt.offset) {
				t.Errorf("expected %s@%d, got %s", tt.focus.Block, tt.offset, c)
			}
		})
	}
}

func TestFocusAllSelectsText(t *testing.T) {
	seq := block.Sequence{{ID: "A", Type: "paragraph", Text: block.StringPtr("héllo")}}

	c, ok := handler.FocusAllOf("A").Resolve(seq)
	if !ok {
		t.Fatal("expected block to resolve")
	}
	if c.Selection.AnchorOffset != 0 || c.Selection.FocusOffset != 5 {
		t.Errorf("expected selection [0,5], got %+v", c.Selection)
	}
}

func TestResultViewUpdates(t *testing.T) {
	r := handler.Success().WithRedraw().WithScroll(-3).WithReveal("B")

	if !r.ViewUpdate.Redraw {
		t.Error("expected redraw")
	}
	if r.ViewUpdate.ScrollBy != -3 {
		t.Errorf("expected scroll -3, got %d", r.ViewUpdate.ScrollBy)
	}
	if r.ViewUpdate.Reveal != "B" {
		t.Errorf("expected reveal B, got %q", r.ViewUpdate.Reveal)
	}
}

func TestResultChangedDoesNotAlias(t *testing.T) {
	base := handler.Success().WithChanged("A")
	a := base.WithChanged("B")
	b := base.WithChanged("C")

	if len(a.Changed) != 2 || a.Changed[1] != "B" {
		t.Errorf("expected [A B], got %v", a.Changed)
	}
	if len(b.Changed) != 2 || b.Changed[1] != "C" {
		t.Errorf("expected [A C], got %v", b.Changed)
	}
}

func TestResultData(t *testing.T) {
	base := handler.NoOp().WithData("prompt", "Turn into")
	r := base.WithData("valid", true)

	if got := r.GetDataString("prompt"); got != "Turn into" {
		t.Errorf("expected 'Turn into', got %q", got)
	}
	if !r.GetDataBool("valid") {
		t.Error("expected valid to be true")
	}
	if _, ok := base.GetData("valid"); ok {
		t.Error("expected WithData to leave the original result untouched")
	}
	if _, ok := handler.Success().GetData("x"); ok {
		t.Error("expected no data on a fresh result")
	}
}
