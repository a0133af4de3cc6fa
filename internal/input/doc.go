// Package input turns raw terminal input into editor actions.
//
// Key events are resolved through a layered keymap. Unbound printable
// characters become "editor.insertText" actions so typing reaches the
// focused block. While a prompt is open, keys edit the prompt line
// instead and Enter submits its text as the prompt's action.
//
// Subpackages:
//
//   - key: key events, specifications and tcell conversion
//   - keymap: bindings and layered lookup
//   - mouse: clicks, block handle drags and scrolling
//
// # Usage
//
//	h := input.NewHandler(registry)
//	if action := h.HandleKey(key.FromTcell(ev)); action != nil {
//	    dispatcher.Dispatch(*action)
//	}
package input
