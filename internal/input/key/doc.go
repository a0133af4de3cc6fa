// Package key provides key event types and parsing for keymaps.
//
// A key specification names one key press:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+M", "Shift+Tab", "Ctrl+Alt+Up"
//   - Vim-style: "<C-m>", "<S-Tab>", "<CR>", "<BS>"
//
// Every specification has one canonical form, returned by Event.Spec, so
// keymaps compare bindings by string.
package key
