package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/paper/internal/dispatcher/handler"
	"github.com/dshills/paper/internal/dispatcher/handlers/blocks"
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/input"
)

// api returns the functions of the global "paper" table.
func (e *Engine) api() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"blocks":      e.luaBlocks,
		"indent":      e.luaIndent,
		"outdent":     e.luaOutdent,
		"update_text": e.luaUpdateText,
		"turn_into":   e.luaTurnInto,
		"split":       e.luaSplit,
		"combine":     e.luaCombine,
		"move":        e.luaMove,
		"commit":      e.luaCommit,
		"register":    e.luaRegister,
	}
}

func (e *Engine) luaBlocks(L *lua.LState) int {
	L.Push(sequenceTable(L, e.paper.Blocks()))
	return 1
}

func (e *Engine) luaIndent(L *lua.LState) int {
	return e.dispatch(L, e.action(blocks.ActionIndent, L.CheckString(1)))
}

func (e *Engine) luaOutdent(L *lua.LState) int {
	return e.dispatch(L, e.action(blocks.ActionOutdent, L.CheckString(1)))
}

func (e *Engine) luaUpdateText(L *lua.LState) int {
	a := e.action(blocks.ActionUpdateText, L.CheckString(1)).WithText(L.CheckString(2))
	return e.dispatch(L, a)
}

// luaTurnInto takes an optional third table of attribute overrides, for
// example {checked = true}.
func (e *Engine) luaTurnInto(L *lua.LState) int {
	a := e.action(blocks.ActionTurnInto, L.CheckString(1))
	a.Args.Type = L.CheckString(2)
	if t, ok := L.Get(3).(*lua.LTable); ok {
		if m, ok := fromLua(t).(map[string]any); ok {
			a.Args.Extra = m
		}
	}
	return e.dispatch(L, a)
}

// luaSplit splits at the selection [anchor, focus]. A missing focus means
// a caret at anchor.
func (e *Engine) luaSplit(L *lua.LState) int {
	a := e.action(blocks.ActionSplitBlock, L.CheckString(1))
	anchor := L.CheckInt(2)
	focus := L.OptInt(3, anchor)
	a.Args.Offset = focus
	a.Args.Extra = map[string]any{"anchor": anchor}
	return e.dispatch(L, a)
}

func (e *Engine) luaCombine(L *lua.LState) int {
	return e.dispatch(L, e.action(blocks.ActionCombineBlock, L.CheckString(1)))
}

// luaMove takes an optional third argument, "before" or "after".
func (e *Engine) luaMove(L *lua.LState) int {
	a := e.action(blocks.ActionMoveTo, L.CheckString(1))
	a.Args.Dest = block.ID(L.CheckString(2))
	if p := L.OptString(3, ""); p != "" {
		a.Args.Extra = map[string]any{"placement": p}
	}
	return e.dispatch(L, a)
}

func (e *Engine) luaCommit(L *lua.LState) int {
	e.paper.Commit()
	return 0
}

func (e *Engine) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if err := e.register(name, fn); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

func (e *Engine) action(name, id string) input.Action {
	return input.NewAction(name, input.SourceScript).WithBlock(block.ID(id))
}

// dispatch runs a block action and pushes true when it changed the
// outline and false when it had no effect. An action cancelled before it
// ran, such as one naming a block that does not exist, had no effect
// either. Failures raise a Lua error.
func (e *Engine) dispatch(L *lua.LState, a input.Action) int {
	r := e.dispatcher.Dispatch(a)
	switch r.Status {
	case handler.StatusOK:
		L.Push(lua.LTrue)
	case handler.StatusNoOp, handler.StatusCancelled:
		L.Push(lua.LFalse)
	default:
		msg := r.Message
		if r.Error != nil {
			msg = r.Error.Error()
		}
		L.RaiseError("%s: %s", a.Name, msg)
	}
	return 1
}
