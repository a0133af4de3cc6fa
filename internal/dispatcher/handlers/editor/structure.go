package editor

import (
	"fmt"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/paper"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

// Action names for structural gestures.
const (
	ActionEnter          = "editor.enter"
	ActionBackspace      = "editor.backspace"
	ActionTab            = "editor.tab"
	ActionShiftTab       = "editor.shiftTab"
	ActionToggleList     = "editor.toggleList"
	ActionTurnIntoPrompt = "editor.turnIntoPrompt"
	ActionMoveUp         = "editor.moveUp"
	ActionMoveDown       = "editor.moveDown"
)

// Result data keys.
const (
	// DataPrompt asks the host to open a prompt with this label.
	DataPrompt = "prompt"
	// DataPromptAction is the action the prompt submits.
	DataPromptAction = "promptAction"
)

// PromptTurnInto is the label of the turn-into prompt.
const PromptTurnInto = "Turn into"

// StructureHandler handles gestures that change the shape of the document.
type StructureHandler struct {
	text *TextHandler
}

// NewStructureHandler creates a new structure handler.
func NewStructureHandler() *StructureHandler {
	return &StructureHandler{text: NewTextHandler()}
}

// Namespace returns the editor namespace.
func (h *StructureHandler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *StructureHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionEnter, ActionBackspace, ActionTab, ActionShiftTab,
		ActionToggleList, ActionTurnIntoPrompt, ActionMoveUp, ActionMoveDown:
		return true
	}
	return false
}

// HandleAction processes a structural gesture.
func (h *StructureHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	b, r := target(ctx)
	if r != nil {
		return *r
	}

	switch action.Name {
	case ActionEnter:
		return h.enter(ctx, b)
	case ActionBackspace:
		return h.backspace(ctx, b)
	case ActionTab:
		return h.shift(ctx, b, command.NameIndent)
	case ActionShiftTab:
		return h.shift(ctx, b, command.NameOutdent)
	case ActionToggleList:
		return h.toggleList(ctx, b)
	case ActionTurnIntoPrompt:
		return h.turnIntoPrompt(ctx, b, action.Args.Text)
	case ActionMoveUp:
		return h.moveUp(ctx, b)
	case ActionMoveDown:
		return h.moveDown(ctx, b)
	default:
		return handler.Errorf("unknown structure action: %s", action.Name)
	}
}

// enter resets an empty typed block to the default type, and splits any
// other block at the selection.
func (h *StructureHandler) enter(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if !ctx.IsDefaultType(b) && b.HasText() && b.TextValue() == "" {
		return h.resetType(ctx, b)
	}

	_, res := run(ctx, command.NameSplitBlock, command.Args{})
	if !res.IsOK() {
		return res
	}
	// The new block has no rendered line until the split is committed.
	if next, ok := ctx.Paper.FindNextBlock(b.ID); ok {
		res = res.WithFocusAfterRender(handler.FocusStartOf(next.ID))
	}
	return res
}

// backspace at the start of a block undoes structure one step at a time:
// typed blocks become default blocks, nested blocks are outdented, and
// top-level default blocks merge into the previous block. Anywhere else it
// deletes text.
func (h *StructureHandler) backspace(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	if !collapsedAt(ctx, 0) {
		return h.text.deleteBack(ctx, b)
	}
	if !ctx.IsDefaultType(b) {
		return h.resetType(ctx, b)
	}
	if b.Indent > 0 {
		_, res := run(ctx, command.NameOutdent, command.Args{})
		return res.WithFocus(handler.FocusStartOf(b.ID))
	}

	prev, ok := ctx.Paper.FindPrevBlock(b.ID)
	if !ok {
		return handler.NoOp()
	}
	join := cursor.Length(prev)
	_, res := run(ctx, command.NameCombineBlock, command.Args{})
	return res.WithFocus(handler.FocusOffset(prev.ID, join))
}

func (h *StructureHandler) resetType(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	def := ctx.Schema.DefaultSchema()
	_, res := run(ctx, command.NameTurnInto, command.Args{Type: def.Type})
	return res.WithFocus(handler.FocusOffset(b.ID, caret(ctx, b)))
}

func (h *StructureHandler) shift(ctx *execctx.ExecutionContext, b block.Block, name string) handler.Result {
	res := handler.NoOp()
	for range ctx.GetCount() {
		_, step := run(ctx, name, command.Args{})
		if step.IsError() {
			return step
		}
		if step.IsOK() {
			res = step
		}
	}
	if !res.IsOK() {
		return res
	}
	return res.WithFocus(handler.FocusOffset(b.ID, caret(ctx, b)))
}

// toggleList turns a block into a list item, and a list item back into a
// default block.
func (h *StructureHandler) toggleList(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	t := schema.TypeList
	if b.Type == schema.TypeList {
		t = ctx.Schema.DefaultSchema().Type
	}
	if !ctx.Schema.Has(t) {
		return handler.NoOpWithMessage(fmt.Sprintf("no %s block type", t))
	}
	_, res := run(ctx, command.NameTurnInto, command.Args{Type: t})
	return res.WithFocus(handler.FocusOffset(b.ID, caret(ctx, b)))
}

// turnIntoPrompt asks for a type name when none is given, and otherwise
// converts the block to the registered type closest to the name.
func (h *StructureHandler) turnIntoPrompt(ctx *execctx.ExecutionContext, b block.Block, name string) handler.Result {
	if name == "" {
		return handler.NoOp().
			WithData(DataPrompt, PromptTurnInto).
			WithData(DataPromptAction, ActionTurnIntoPrompt)
	}

	t := ctx.Schema.Suggest(name)
	if t == "" {
		return handler.NoOpWithMessage(fmt.Sprintf("no block type like %q", name))
	}
	def, err := ctx.Schema.Find(t)
	if err != nil {
		return handler.Error(err)
	}
	_, res := run(ctx, command.NameTurnInto, command.Args{Type: t})
	return res.
		WithMessage("turned into " + def.DisplayLabel()).
		WithFocus(handler.FocusOffset(b.ID, caret(ctx, b)))
}

// moveUp moves the block's group before the nearest preceding block that
// is not nested deeper than it.
func (h *StructureHandler) moveUp(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	seq := ctx.Paper.Blocks()
	i := seq.IndexOf(b.ID)
	for j := i - 1; j >= 0; j-- {
		if seq[j].Indent <= b.Indent {
			return h.move(ctx, b, seq[j].ID, command.Before)
		}
	}
	return handler.NoOp()
}

// moveDown moves the block's group past the group that follows it.
func (h *StructureHandler) moveDown(ctx *execctx.ExecutionContext, b block.Block) handler.Result {
	seq := ctx.Paper.Blocks()
	_, end := paper.GroupRange(seq, seq.IndexOf(b.ID))
	if end >= len(seq) {
		return handler.NoOp()
	}
	_, nextEnd := paper.GroupRange(seq, end)
	return h.move(ctx, b, seq[nextEnd-1].ID, command.After)
}

func (h *StructureHandler) move(ctx *execctx.ExecutionContext, b block.Block, dest block.ID, at command.Placement) handler.Result {
	_, res := run(ctx, command.NameMoveTo, command.Args{Target: b.ID, Dest: dest, Placement: at})
	return res.WithFocus(handler.FocusOffset(b.ID, caret(ctx, b)))
}
