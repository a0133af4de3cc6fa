package keymap

// Default returns the built-in bindings.
func Default() *Keymap {
	return &Keymap{
		Name:     "default",
		Source:   "default",
		Priority: PriorityDefault,
		Bindings: []Binding{
			// Structure
			{Keys: "Enter", Action: "editor.enter", Description: "Split block or reset its type", Category: "Structure"},
			{Keys: "Backspace", Action: "editor.backspace", Description: "Delete back, outdent or merge", Category: "Structure"},
			{Keys: "Tab", Action: "editor.tab", Description: "Indent block", Category: "Structure"},
			{Keys: "Shift+Tab", Action: "editor.shiftTab", Description: "Outdent block", Category: "Structure"},
			{Keys: "Ctrl+M", Action: "editor.toggleList", Description: "Turn into list", Category: "Structure"},
			{Keys: "Ctrl+L", Action: "editor.toggleList", Description: "Turn into list", Category: "Structure"},
			{Keys: "Ctrl+T", Action: "editor.turnIntoPrompt", Description: "Turn into type by name", Category: "Structure"},
			{Keys: "Alt+Up", Action: "editor.moveUp", Description: "Move group up", Category: "Structure"},
			{Keys: "Alt+Down", Action: "editor.moveDown", Description: "Move group down", Category: "Structure"},

			// Navigation
			{Keys: "Up", Action: "editor.arrowUp", Description: "Focus previous block", Category: "Navigation"},
			{Keys: "Down", Action: "editor.arrowDown", Description: "Focus next block", Category: "Navigation"},
			{Keys: "Left", Action: "editor.arrowLeft", Description: "Move caret left", Category: "Navigation"},
			{Keys: "Right", Action: "editor.arrowRight", Description: "Move caret right", Category: "Navigation"},
			{Keys: "Home", Action: "editor.home", Description: "Caret to block start", Category: "Navigation"},
			{Keys: "End", Action: "editor.end", Description: "Caret to block end", Category: "Navigation"},

			// View
			{Keys: "PageUp", Action: "view.pageUp", Description: "Scroll up one page", Category: "View"},
			{Keys: "PageDown", Action: "view.pageDown", Description: "Scroll down one page", Category: "View"},

			// Text
			{Keys: "Delete", Action: "editor.deleteForward", Description: "Delete next character", Category: "Text"},

			// Application
			{Keys: "Ctrl+Q", Action: "app.quit", Description: "Quit", Category: "Application"},
			{Keys: "Escape", Action: "app.cancel", Description: "Cancel prompt or drag", Category: "Application"},
		},
	}
}
