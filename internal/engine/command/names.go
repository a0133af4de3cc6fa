package command

import (
	"fmt"
	"sort"

	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/schema"
)

// Args carries the arguments of a command invoked by name. Each command
// reads only the fields it needs.
type Args struct {
	// Text is the replacement text for updateText.
	Text string

	// Type and Fields parametrize turnInto.
	Type   block.Type
	Fields schema.Fields

	// Target and Dest parametrize moveTo. A zero Target means the context
	// block.
	Target    block.ID
	Dest      block.ID
	Placement Placement
}

// Func is a command addressable by name.
type Func func(ctx Context, args Args) (Context, error)

// Command names.
const (
	NameUpdateText   = "updateText"
	NameIndent       = "indent"
	NameOutdent      = "outdent"
	NameTurnInto     = "turnInto"
	NameSplitBlock   = "splitBlock"
	NameCombineBlock = "combineBlock"
	NameMoveTo       = "moveTo"
)

// Names maps command names to their implementations.
var Names = map[string]Func{
	NameUpdateText: func(ctx Context, args Args) (Context, error) {
		return UpdateText(ctx, args.Text)
	},
	NameIndent: func(ctx Context, _ Args) (Context, error) {
		return Indent(ctx)
	},
	NameOutdent: func(ctx Context, _ Args) (Context, error) {
		return Outdent(ctx)
	},
	NameTurnInto: func(ctx Context, args Args) (Context, error) {
		return TurnInto(ctx, args.Type, args.Fields)
	},
	NameSplitBlock: func(ctx Context, _ Args) (Context, error) {
		return SplitBlock(ctx)
	},
	NameCombineBlock: func(ctx Context, _ Args) (Context, error) {
		return CombineBlock(ctx)
	},
	NameMoveTo: func(ctx Context, args Args) (Context, error) {
		target := args.Target
		if target.IsZero() {
			target = ctx.Block.ID
		}
		return Move(ctx, target, args.Dest, args.Placement)
	},
}

// Lookup returns the command registered under name.
func Lookup(name string) (Func, error) {
	fn, ok := Names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return fn, nil
}

// Run invokes the command registered under name.
func Run(name string, ctx Context, args Args) (Context, error) {
	fn, err := Lookup(name)
	if err != nil {
		return ctx, err
	}
	return fn(ctx, args)
}

// List returns the registered command names in sorted order.
func List() []string {
	names := make([]string, 0, len(Names))
	for name := range Names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
