package input

import "github.com/dshills/paper/internal/engine/block"

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourceMouse indicates the action originated from mouse input.
	SourceMouse
	// SourcePrompt indicates the action was submitted from a prompt.
	SourcePrompt
	// SourceScript indicates the action originated from a Lua script.
	SourceScript
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceMouse:
		return "mouse"
	case SourcePrompt:
		return "prompt"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// Block is the block the action targets. Zero means the focused block.
	Block block.ID

	// Dest is the destination block of a move.
	Dest block.ID

	// Offset is a caret offset in grapheme clusters, or -1 when unset.
	Offset int

	// Text for insert and prompt actions.
	Text string

	// Type is a block type name for conversions.
	Type string

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]any
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (any, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value from Extra.
func (a ActionArgs) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "editor.enter", "block.indent").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count. Zero and one both mean once.
	Count int
}

// NewAction creates an action with unset offset.
func NewAction(name string, source ActionSource) Action {
	return Action{Name: name, Source: source, Args: ActionArgs{Offset: -1}}
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return a.Name
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// WithBlock returns a copy of the action targeting a block.
func (a Action) WithBlock(id block.ID) Action {
	a.Args.Block = id
	return a
}

// WithText returns a copy of the action with text.
func (a Action) WithText(text string) Action {
	a.Args.Text = text
	return a
}
