package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paper/internal/renderer/core"
)

func TestMemoryCells(t *testing.T) {
	m := NewMemory(10, 2)
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for i, c := range core.CellsFromString("héllo", core.DefaultStyle()) {
		m.SetCell(i, 0, c)
	}
	m.SetCell(99, 0, core.NewCell("x", core.DefaultStyle()))

	if got := m.Row(0); got != "héllo" {
		t.Errorf("expected héllo, got %q", got)
	}
	if got := m.Row(1); got != "" {
		t.Errorf("expected blank row, got %q", got)
	}
	if got := m.GetCell(-1, 0); got != core.EmptyCell() {
		t.Errorf("expected empty cell outside grid, got %+v", got)
	}

	m.Clear()
	if got := m.Row(0); got != "" {
		t.Errorf("expected blank row after clear, got %q", got)
	}
}

func TestMemoryCursorAndResize(t *testing.T) {
	m := NewMemory(4, 4)
	m.ShowCursor(2, 3)
	if x, y, ok := m.Cursor(); x != 2 || y != 3 || !ok {
		t.Errorf("expected visible caret at 2,3, got %d,%d %v", x, y, ok)
	}
	m.HideCursor()
	if _, _, ok := m.Cursor(); ok {
		t.Error("expected hidden caret")
	}

	m.Resize(8, 1)
	if w, h := m.Size(); w != 8 || h != 1 {
		t.Errorf("expected 8x1, got %dx%d", w, h)
	}
}

func TestMemoryEvents(t *testing.T) {
	m := NewMemory(1, 1)
	ev := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	if err := m.PostEvent(ev); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	if got := m.PollEvent(); got != ev {
		t.Errorf("expected posted event, got %v", got)
	}

	m.Shutdown()
	if got := m.PollEvent(); got != nil {
		t.Errorf("expected nil after shutdown, got %v", got)
	}
	if err := m.PostEvent(ev); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(10, 2)

	style := core.NewStyle(core.ColorFromRGB(200, 10, 10)).Bold()
	for i, c := range core.CellsFromString("ab", style) {
		term.SetCell(i, 0, c)
	}
	term.Show()

	got := term.GetCell(1, 0)
	if got.Text != "b" {
		t.Errorf("expected b, got %q", got.Text)
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("expected bold to survive the round trip")
	}
	if got.Style.Foreground != core.ColorFromRGB(200, 10, 10) {
		t.Errorf("expected foreground to survive, got %v", got.Style.Foreground)
	}
	if w, h := term.Size(); w != 10 || h != 2 {
		t.Errorf("expected 10x2, got %dx%d", w, h)
	}
}
