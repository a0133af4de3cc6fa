package input

import (
	"sync"

	"github.com/dshills/paper/internal/input/key"
	"github.com/dshills/paper/internal/input/keymap"
)

// Standard action names produced by the handler itself.
const (
	ActionInsertText = "editor.insertText"
	ActionCancel     = "app.cancel"
)

// Hook allows interception of key handling.
type Hook interface {
	// PreKeyEvent is called before a key is resolved. Return true to
	// consume the event.
	PreKeyEvent(ev key.Event) bool

	// PostKeyEvent is called with the resolved action, which may be nil.
	PostKeyEvent(ev key.Event, action *Action)
}

// Handler resolves key events to actions.
type Handler struct {
	mu     sync.Mutex
	keymap *keymap.Registry
	prompt *Prompt
	hooks  []Hook
}

// NewHandler creates a handler that resolves keys through reg.
func NewHandler(reg *keymap.Registry) *Handler {
	if reg == nil {
		reg = keymap.NewRegistry()
	}
	return &Handler{keymap: reg}
}

// Keymap returns the keymap registry.
func (h *Handler) Keymap() *keymap.Registry {
	return h.keymap
}

// AddHook registers a hook.
func (h *Handler) AddHook(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// OpenPrompt starts a prompt. Subsequent keys edit it until Enter submits
// action with the typed text, or Escape cancels.
func (h *Handler) OpenPrompt(label, action string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompt = newPrompt(label, action)
}

// Prompt returns the open prompt, or nil.
func (h *Handler) Prompt() *Prompt {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prompt
}

// ClosePrompt discards the open prompt.
func (h *Handler) ClosePrompt() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompt = nil
}

// HandleKey resolves a key event. It returns nil when the key produced
// no action.
func (h *Handler) HandleKey(ev key.Event) *Action {
	h.mu.Lock()
	hooks := h.hooks
	h.mu.Unlock()

	for _, hook := range hooks {
		if hook.PreKeyEvent(ev) {
			return nil
		}
	}

	action := h.resolve(ev)

	for _, hook := range hooks {
		hook.PostKeyEvent(ev, action)
	}
	return action
}

func (h *Handler) resolve(ev key.Event) *Action {
	h.mu.Lock()
	p := h.prompt
	h.mu.Unlock()

	if p != nil {
		switch p.handle(ev) {
		case promptSubmit:
			h.ClosePrompt()
			a := NewAction(p.Action, SourcePrompt).WithText(p.Buffer())
			return &a
		case promptCancel:
			h.ClosePrompt()
			a := NewAction(ActionCancel, SourcePrompt)
			return &a
		}
		return nil
	}

	if b, ok := h.keymap.Lookup(ev); ok {
		a := NewAction(b.Action, SourceKeyboard)
		a.Args.Extra = b.Args
		if t, ok := b.Args["type"].(string); ok {
			a.Args.Type = t
		}
		return &a
	}

	if ev.IsText() {
		a := NewAction(ActionInsertText, SourceKeyboard).WithText(string(ev.Rune))
		return &a
	}
	return nil
}
