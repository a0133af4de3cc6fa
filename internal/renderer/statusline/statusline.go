// Package statusline renders the bottom line: the focused block's type,
// messages and the prompt.
package statusline

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/paper/internal/renderer/backend"
	"github.com/dshills/paper/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// Styles holds the status line styles.
type Styles struct {
	Bar   core.Style
	Label core.Style
	Error core.Style
}

// StatusLine renders the bottom status line including the prompt.
type StatusLine struct {
	label    string // type label of the focused block
	position int    // 1-based index of the focused block, 0 if none
	total    int

	promptActive bool
	promptLabel  string
	promptBuffer string
	promptCursor int // in runes

	message     string
	messageType MessageType

	styles Styles
	upper  cases.Caser
}

// New creates a new status line.
func New(styles Styles) *StatusLine {
	return &StatusLine{
		styles: styles,
		upper:  cases.Upper(language.Und),
	}
}

// SetStyles replaces the styles.
func (s *StatusLine) SetStyles(styles Styles) {
	s.styles = styles
}

// SetBlock sets the focused block's type label and position.
func (s *StatusLine) SetBlock(label string, position, total int) {
	s.label = label
	s.position = position
	s.total = total
}

// SetPrompt shows a prompt instead of the status bar.
func (s *StatusLine) SetPrompt(label, buffer string, cursor int) {
	s.promptActive = true
	s.promptLabel = label
	s.promptBuffer = buffer
	s.promptCursor = cursor
}

// ClearPrompt returns to the status bar.
func (s *StatusLine) ClearPrompt() {
	s.promptActive = false
	s.promptLabel, s.promptBuffer = "", ""
	s.promptCursor = 0
}

// SetMessage shows a message next to the type label.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage removes the message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Render draws the line at row. With a prompt open it also places the
// caret and reports true.
func (s *StatusLine) Render(b backend.Backend, row, width int) bool {
	if s.promptActive {
		s.renderPrompt(b, row, width)
		return true
	}
	s.renderStatusBar(b, row, width)
	return false
}

func (s *StatusLine) renderStatusBar(b backend.Backend, row, width int) {
	bar := s.styles.Bar
	fill(b, row, width, bar)

	col := 0
	if s.label != "" {
		col = put(b, col, row, width, " "+s.upper.String(s.label)+" ", s.styles.Label)
		col = put(b, col, row, width, " ", bar)
	}
	if s.message != "" {
		style := bar
		if s.messageType == MessageError {
			style = s.styles.Error
		}
		col = put(b, col, row, width, s.message, style)
	}

	if s.total == 0 {
		return
	}
	pos := fmt.Sprintf("%d/%d ", s.position, s.total)
	if start := width - len(pos); start > col {
		put(b, start, row, width, pos, bar)
	}
}

func (s *StatusLine) renderPrompt(b backend.Backend, row, width int) {
	fill(b, row, width, s.styles.Bar)

	prefix := s.promptLabel + ": "
	col := put(b, 0, row, width, prefix, s.styles.Label)
	put(b, col, row, width, s.promptBuffer, s.styles.Bar)

	runes := []rune(s.promptBuffer)
	cursor := min(max(s.promptCursor, 0), len(runes))
	x := col + len(core.CellsFromString(string(runes[:cursor]), s.styles.Bar))
	b.ShowCursor(min(x, width-1), row)
}

func fill(b backend.Backend, row, width int, style core.Style) {
	blank := core.EmptyCell()
	blank.Style = style
	for x := range width {
		b.SetCell(x, row, blank)
	}
}

// put draws text from col and returns the column after it.
func put(b backend.Backend, col, row, width int, text string, style core.Style) int {
	for _, c := range core.CellsFromString(text, style) {
		if col >= width {
			break
		}
		b.SetCell(col, row, c)
		col++
	}
	return col
}
