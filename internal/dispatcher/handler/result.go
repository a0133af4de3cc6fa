package handler

import (
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/cursor"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates the operation was cancelled.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FocusPlacement says where in the focused block the caret lands.
type FocusPlacement uint8

const (
	// FocusAt places the caret at Focus.Offset.
	FocusAt FocusPlacement = iota
	// FocusStart places the caret before the first character.
	FocusStart
	// FocusEnd places the caret after the last character.
	FocusEnd
	// FocusAll selects the whole text of the block.
	FocusAll
)

// Focus asks the dispatcher to move the caret.
type Focus struct {
	// Block receives focus.
	Block block.ID

	// Offset is the caret offset for FocusAt.
	Offset int

	// Placement selects how the offset is chosen.
	Placement FocusPlacement

	// AfterRender defers the move until the next commit has been rendered,
	// for blocks that only exist once the commit lands.
	AfterRender bool
}

// FocusStartOf focuses the start of id.
func FocusStartOf(id block.ID) Focus {
	return Focus{Block: id, Placement: FocusStart}
}

// FocusEndOf focuses the end of id.
func FocusEndOf(id block.ID) Focus {
	return Focus{Block: id, Placement: FocusEnd}
}

// FocusOffset focuses offset inside id.
func FocusOffset(id block.ID, offset int) Focus {
	return Focus{Block: id, Offset: offset}
}

// FocusAllOf selects all text of id.
func FocusAllOf(id block.ID) Focus {
	return Focus{Block: id, Placement: FocusAll}
}

// Resolve turns the focus into a cursor against seq. It returns false when
// the block is not in seq.
func (f Focus) Resolve(seq block.Sequence) (cursor.Cursor, bool) {
	i := seq.IndexOf(f.Block)
	if i < 0 {
		return cursor.Cursor{}, false
	}
	length := cursor.Length(seq[i])
	switch f.Placement {
	case FocusStart:
		return cursor.At(f.Block, 0), true
	case FocusEnd:
		return cursor.At(f.Block, length), true
	case FocusAll:
		return cursor.At(f.Block, 0).Extend(length), true
	default:
		return cursor.At(f.Block, f.Offset).Clamp(length), true
	}
}

// ViewUpdate describes required view updates.
type ViewUpdate struct {
	// Redraw indicates whether the entire view needs redrawing.
	Redraw bool

	// ScrollBy scrolls the view by lines, negative is up.
	ScrollBy int

	// Reveal scrolls until the block is visible.
	Reveal block.ID
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Focus moves the caret when set.
	Focus *Focus

	// Changed lists the blocks the action wrote.
	Changed []block.ID

	// ViewUpdate indicates required view updates.
	ViewUpdate ViewUpdate

	// Data holds handler-specific return data.
	Data map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}

// Cancelled creates a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// CancelledWithMessage creates a cancelled result with a message.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithFocus returns a copy of the result that moves the caret.
func (r Result) WithFocus(f Focus) Result {
	r.Focus = &f
	return r
}

// WithFocusAfterRender returns a copy of the result that moves the caret
// once the next commit is rendered.
func (r Result) WithFocusAfterRender(f Focus) Result {
	f.AfterRender = true
	r.Focus = &f
	return r
}

// WithChanged returns a copy of the result with ids added to Changed.
func (r Result) WithChanged(ids ...block.ID) Result {
	r.Changed = append(append([]block.ID(nil), r.Changed...), ids...)
	return r
}

// WithRedraw returns a copy of the result requesting a full redraw.
func (r Result) WithRedraw() Result {
	r.ViewUpdate.Redraw = true
	return r
}

// WithScroll returns a copy of the result scrolling by lines.
func (r Result) WithScroll(lines int) Result {
	r.ViewUpdate.ScrollBy = lines
	return r
}

// WithReveal returns a copy of the result revealing id.
func (r Result) WithReveal(id block.ID) Result {
	r.ViewUpdate.Reveal = id
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataBool retrieves a bool value from the result data.
func (r Result) GetDataBool(key string) bool {
	if v, ok := r.GetData(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
