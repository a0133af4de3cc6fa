package blocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/paper/internal/dispatcher/execctx"
	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/command"
	"github.com/dshills/paper/internal/engine/cursor"
	"github.com/dshills/paper/internal/engine/schema"
	"github.com/dshills/paper/internal/input"
)

// Namespace is the action namespace of block commands.
const Namespace = "block"

// Action names.
const (
	ActionUpdateText   = Namespace + "." + command.NameUpdateText
	ActionIndent       = Namespace + "." + command.NameIndent
	ActionOutdent      = Namespace + "." + command.NameOutdent
	ActionTurnInto     = Namespace + "." + command.NameTurnInto
	ActionSplitBlock   = Namespace + "." + command.NameSplitBlock
	ActionCombineBlock = Namespace + "." + command.NameCombineBlock
	ActionMoveTo       = Namespace + "." + command.NameMoveTo
)

// Handler runs block commands by name.
type Handler struct{}

// NewHandler creates a block command handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace implements handler.NamespaceHandler.
func (h *Handler) Namespace() string {
	return Namespace
}

// CanHandle implements handler.NamespaceHandler.
func (h *Handler) CanHandle(actionName string) bool {
	name, ok := strings.CutPrefix(actionName, Namespace+".")
	if !ok {
		return false
	}
	_, err := command.Lookup(name)
	return err == nil
}

// Actions returns the action names the handler accepts.
func (h *Handler) Actions() []string {
	names := command.List()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Namespace + "." + n
	}
	return out
}

// HandleAction implements handler.NamespaceHandler.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	name := commandName(action.Name)
	args, err := Args(action, ctx)
	if err != nil {
		return handler.Error(err)
	}

	before := ctx.Paper.Blocks()
	var out command.Context
	for range repeat(name, ctx.GetCount()) {
		out, err = command.Run(name, ctx.Command(), args)
		if err != nil {
			return handler.Error(fmt.Errorf("%s: %w", action.Name, err))
		}
		ctx.Block = out.Block.ID
	}

	changed := block.Diff(before, ctx.Paper.Blocks())
	if len(changed) == 0 {
		return handler.NoOp()
	}
	return handler.Success().
		WithChanged(changed...).
		WithFocus(focusAfter(name, out, ctx, before)).
		WithRedraw()
}

// repeat returns how many times a command runs for count. Only the
// indentation commands honour counts.
func repeat(name string, count int) int {
	switch name {
	case command.NameIndent, command.NameOutdent:
		return count
	}
	return 1
}

// focusAfter keeps the caret on the command's target, at the offset the
// command left it.
func focusAfter(name string, out command.Context, ctx *execctx.ExecutionContext, before block.Sequence) handler.Focus {
	switch name {
	case command.NameSplitBlock:
		// The tail block is created by the split; the caret follows it.
		if next, ok := ctx.Paper.FindNextBlock(out.Block.ID); ok {
			return handler.FocusStartOf(next.ID)
		}
	case command.NameCombineBlock:
		// The caret lands at the join, where the removed block's text begins.
		if i := before.IndexOf(out.Block.ID); i >= 0 {
			return handler.FocusOffset(out.Block.ID, cursor.Length(before[i]))
		}
	case command.NameUpdateText:
		return handler.FocusEndOf(out.Block.ID)
	}
	return handler.FocusOffset(out.Block.ID, ctx.Selection.FocusOffset)
}

// Args maps an action's arguments onto command arguments.
func Args(action input.Action, ctx *execctx.ExecutionContext) (command.Args, error) {
	args := command.Args{
		Text:   action.Args.Text,
		Type:   block.Type(action.Args.Type),
		Target: ctx.Block,
		Dest:   action.Args.Dest,
	}
	args.Fields = schema.Fields{Attrs: attrOverrides(action.Args.Extra)}
	switch p := action.Args.GetString("placement"); p {
	case "", "after":
		args.Placement = command.After
	case "before":
		args.Placement = command.Before
	default:
		return args, fmt.Errorf("%w: placement %q", ErrInvalidArgs, p)
	}
	if commandName(action.Name) == command.NameTurnInto && args.Type == "" {
		return args, fmt.Errorf("%w: turnInto needs a type", ErrInvalidArgs)
	}
	return args, nil
}

// reservedArgs are extra arguments that steer the command rather than
// set block attributes.
var reservedArgs = map[string]bool{
	"anchor":    true,
	"placement": true,
}

// attrOverrides returns the attribute overrides carried by extra. Keys the
// target type does not declare are dropped later by the schema.
func attrOverrides(extra map[string]any) block.Attrs {
	var attrs block.Attrs
	for k, v := range extra {
		if reservedArgs[k] {
			continue
		}
		if attrs == nil {
			attrs = make(block.Attrs, len(extra))
		}
		attrs[k] = v
	}
	return attrs
}

// ErrInvalidArgs indicates an action carried unusable arguments.
var ErrInvalidArgs = errors.New("blocks: invalid arguments")

func commandName(actionName string) string {
	name, _ := strings.CutPrefix(actionName, Namespace+".")
	return name
}
