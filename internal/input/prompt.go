package input

import (
	"unicode"

	"github.com/dshills/paper/internal/input/key"
)

// Prompt is a one-line text entry whose content is submitted as the
// argument of an action.
type Prompt struct {
	// Label is shown before the input line.
	Label string

	// Action is dispatched with the buffer as Args.Text on Enter.
	Action string

	buffer    []rune
	cursorPos int
}

func newPrompt(label, action string) *Prompt {
	return &Prompt{Label: label, Action: action, buffer: make([]rune, 0, 32)}
}

// Buffer returns the current input.
func (p *Prompt) Buffer() string {
	return string(p.buffer)
}

// CursorPos returns the cursor position within the input in runes.
func (p *Prompt) CursorPos() int {
	return p.cursorPos
}

// promptResult is the outcome of feeding a key to a prompt.
type promptResult uint8

const (
	promptContinue promptResult = iota
	promptSubmit
	promptCancel
)

func (p *Prompt) handle(ev key.Event) promptResult {
	switch {
	case ev.Key == key.KeyEnter:
		return promptSubmit
	case ev.Key == key.KeyEscape:
		return promptCancel
	case ev.Key == key.KeyBackspace:
		if p.cursorPos > 0 {
			p.buffer = append(p.buffer[:p.cursorPos-1], p.buffer[p.cursorPos:]...)
			p.cursorPos--
		}
	case ev.Key == key.KeyDelete:
		if p.cursorPos < len(p.buffer) {
			p.buffer = append(p.buffer[:p.cursorPos], p.buffer[p.cursorPos+1:]...)
		}
	case ev.Key == key.KeyLeft:
		if p.cursorPos > 0 {
			p.cursorPos--
		}
	case ev.Key == key.KeyRight:
		if p.cursorPos < len(p.buffer) {
			p.cursorPos++
		}
	case ev.Key == key.KeyHome:
		p.cursorPos = 0
	case ev.Key == key.KeyEnd:
		p.cursorPos = len(p.buffer)
	case ev.IsRune() && ev.Modifiers == key.ModNone && unicode.IsPrint(ev.Rune):
		p.insertRune(ev.Rune)
	}
	return promptContinue
}

func (p *Prompt) insertRune(r rune) {
	if p.cursorPos >= len(p.buffer) {
		p.buffer = append(p.buffer, r)
	} else {
		p.buffer = append(p.buffer[:p.cursorPos+1], p.buffer[p.cursorPos:]...)
		p.buffer[p.cursorPos] = r
	}
	p.cursorPos++
}
