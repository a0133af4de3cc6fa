package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paper/internal/renderer/core"
)

// Terminal implements Backend on a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	mouse  bool
}

// NewTerminal creates a backend on the process terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.SetStyle(tcell.StyleDefault)
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	if cell.IsContinuation() {
		return
	}
	runes := []rune(cell.Text)
	if len(runes) == 0 {
		runes = []rune{' '}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, runes[0], runes[1:], convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, combc, style, width := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	text := string(append([]rune{mainc}, combc...))
	return core.Cell{Text: text, Width: width, Style: convertTcellStyle(style)}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// PollEvent does not take the lock: it blocks until input arrives.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

func (t *Terminal) PostEvent(ev tcell.Event) error {
	if err := t.screen.PostEvent(ev); err != nil {
		return ErrEventQueueFull
	}
	return nil
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouse = true
	t.screen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouse = false
	t.screen.DisableMouse()
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func convertColor(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func convertStyle(s core.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background))

	attrs := s.Attributes
	if attrs.Has(core.AttrBold) {
		st = st.Bold(true)
	}
	if attrs.Has(core.AttrDim) {
		st = st.Dim(true)
	}
	if attrs.Has(core.AttrItalic) {
		st = st.Italic(true)
	}
	if attrs.Has(core.AttrUnderline) {
		st = st.Underline(true)
	}
	if attrs.Has(core.AttrReverse) {
		st = st.Reverse(true)
	}
	if attrs.Has(core.AttrStrikethrough) {
		st = st.StrikeThrough(true)
	}
	return st
}

func convertTcellColor(c tcell.Color) core.Color {
	if c == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := c.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

func convertTcellStyle(st tcell.Style) core.Style {
	fg, bg, attrs := st.Decompose()
	out := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
	if attrs&tcell.AttrBold != 0 {
		out = out.Bold()
	}
	if attrs&tcell.AttrDim != 0 {
		out = out.Dim()
	}
	if attrs&tcell.AttrItalic != 0 {
		out = out.Italic()
	}
	if attrs&tcell.AttrUnderline != 0 {
		out = out.Underline()
	}
	if attrs&tcell.AttrReverse != 0 {
		out = out.Reverse()
	}
	if attrs&tcell.AttrStrikeThrough != 0 {
		out = out.Strikethrough()
	}
	return out
}
