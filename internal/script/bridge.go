package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/paper/internal/engine/block"
)

// toLua converts the attribute values blocks carry to Lua values.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			t.RawSetString(k, toLua(L, item))
		}
		return t
	case block.Attrs:
		return toLua(L, map[string]any(val))
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// fromLua converts a Lua value to a Go value. Whole numbers become int.
// Tables with keys 1..n become slices, other tables become maps.
func fromLua(lv lua.LValue) any {
	return fromLuaVisited(lv, make(map[*lua.LTable]bool))
}

func fromLuaVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		if n := v.Len(); n > 0 && countKeys(v) == n {
			out := make([]any, n)
			for i := 1; i <= n; i++ {
				out[i-1] = fromLuaVisited(v.RawGetInt(i), visited)
			}
			return out
		}
		out := make(map[string]any)
		v.ForEach(func(k, item lua.LValue) {
			out[k.String()] = fromLuaVisited(item, visited)
		})
		return out
	default:
		return nil
	}
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(_, _ lua.LValue) { n++ })
	return n
}

// blockTable renders b as {id, type, indent, text, attrs}. Structural
// blocks have no text field.
func blockTable(L *lua.LState, b block.Block) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(b.ID))
	t.RawSetString("type", lua.LString(b.Type))
	t.RawSetString("indent", lua.LNumber(b.Indent))
	if b.HasText() {
		t.RawSetString("text", lua.LString(b.TextValue()))
	}
	attrs := L.NewTable()
	for k, v := range b.Attrs {
		attrs.RawSetString(k, toLua(L, v))
	}
	t.RawSetString("attrs", attrs)
	return t
}

// sequenceTable renders seq as a Lua array of block tables.
func sequenceTable(L *lua.LState, seq block.Sequence) *lua.LTable {
	t := L.CreateTable(len(seq), 0)
	for i, b := range seq {
		t.RawSetInt(i+1, blockTable(L, b))
	}
	return t
}
