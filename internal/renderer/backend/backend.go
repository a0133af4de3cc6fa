// Package backend provides the display surfaces the renderer draws on.
package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paper/internal/renderer/core"
)

// Backend is a grid of cells with a caret. Implementations handle drawing
// to a terminal or to memory.
type Backend interface {
	// Init initializes the backend. Must be called before any other
	// method.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current dimensions.
	Size() (width, height int)

	// SetCell sets the cell at (x, y). Positions outside the grid are
	// ignored. Continuation cells are skipped.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at (x, y), or an empty cell outside the
	// grid.
	GetCell(x, y int) core.Cell

	// Clear blanks the whole grid.
	Clear()

	// Show flushes changes to the display.
	Show()

	// ShowCursor places the caret.
	ShowCursor(x, y int)

	// HideCursor hides the caret.
	HideCursor()

	// PollEvent blocks for the next input event. It returns nil once the
	// backend is shut down.
	PollEvent() tcell.Event

	// PostEvent queues a synthetic event.
	PostEvent(ev tcell.Event) error

	// EnableMouse turns on mouse reporting.
	EnableMouse()

	// DisableMouse turns off mouse reporting.
	DisableMouse()

	// Beep rings the bell.
	Beep()
}

// Memory is an in-memory backend for tests.
type Memory struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	mouse         bool
	shows         int
	events        chan tcell.Event
	closed        bool
}

// NewMemory creates an in-memory backend with the given dimensions.
func NewMemory(width, height int) *Memory {
	m := &Memory{events: make(chan tcell.Event, 64)}
	m.resize(width, height)
	return m
}

func (m *Memory) resize(width, height int) {
	m.width, m.height = width, height
	m.cells = make([][]core.Cell, height)
	for y := range m.cells {
		m.cells[y] = make([]core.Cell, width)
		for x := range m.cells[y] {
			m.cells[y][x] = core.EmptyCell()
		}
	}
}

func (m *Memory) Init() error { return nil }

func (m *Memory) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Memory) SetCell(x, y int, cell core.Cell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = cell
	}
}

func (m *Memory) GetCell(x, y int) core.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		return m.cells[y][x]
	}
	return core.EmptyCell()
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resize(m.width, m.height)
}

func (m *Memory) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows++
}

func (m *Memory) ShowCursor(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorX, m.cursorY, m.cursorVisible = x, y, true
}

func (m *Memory) HideCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorVisible = false
}

func (m *Memory) PollEvent() tcell.Event {
	return <-m.events
}

func (m *Memory) PostEvent(ev tcell.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	select {
	case m.events <- ev:
		return nil
	default:
		return ErrEventQueueFull
	}
}

func (m *Memory) EnableMouse() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mouse = true
}

func (m *Memory) DisableMouse() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mouse = false
}

func (m *Memory) Beep() {}

// Resize changes the dimensions and blanks the grid.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resize(width, height)
}

// Cursor returns the caret position and visibility.
func (m *Memory) Cursor() (x, y int, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursorX, m.cursorY, m.cursorVisible
}

// Shows returns the number of Show calls.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}

// MouseEnabled reports whether mouse reporting is on.
func (m *Memory) MouseEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mouse
}

// Row returns the text of row y with trailing blanks trimmed.
func (m *Memory) Row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	return strings.TrimRight(core.StringFromCells(m.cells[y]), " ")
}

// Lines returns every row, trimmed.
func (m *Memory) Lines() []string {
	_, h := m.Size()
	out := make([]string, h)
	for y := range out {
		out[y] = m.Row(y)
	}
	return out
}
