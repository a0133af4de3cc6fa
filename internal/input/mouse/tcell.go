package mouse

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paper/internal/input/key"
)

// Decoder converts tcell mouse events, which report the buttons held
// rather than transitions, into press, drag and release events.
type Decoder struct {
	held Button
}

// Decode converts a tcell mouse event.
func (d *Decoder) Decode(ev *tcell.EventMouse) Event {
	x, y := ev.Position()
	out := Event{
		Position:  Position{X: x, Y: y},
		Modifiers: decodeMods(ev.Modifiers()),
		Timestamp: ev.When(),
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		out.Button, out.Action = ButtonScrollUp, ActionPress
		return out
	case buttons&tcell.WheelDown != 0:
		out.Button, out.Action = ButtonScrollDown, ActionPress
		return out
	}

	pressed := ButtonNone
	switch {
	case buttons&tcell.Button1 != 0:
		pressed = ButtonLeft
	case buttons&tcell.Button3 != 0:
		pressed = ButtonMiddle
	case buttons&tcell.Button2 != 0:
		pressed = ButtonRight
	}

	switch {
	case pressed != ButtonNone && d.held == ButtonNone:
		out.Button, out.Action = pressed, ActionPress
	case pressed != ButtonNone:
		out.Button, out.Action = d.held, ActionDrag
	case d.held != ButtonNone:
		out.Button, out.Action = d.held, ActionRelease
	default:
		out.Action = ActionMove
	}
	if pressed == ButtonNone || d.held == ButtonNone {
		d.held = pressed
	}
	return out
}

func decodeMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
