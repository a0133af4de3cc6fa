package app

import (
	"github.com/dshills/paper/internal/engine/block"
	"github.com/dshills/paper/internal/engine/schema"
)

// welcome is the outline shown when the configuration seeds no document.
var welcome = []struct {
	typ    block.Type
	indent int
	text   string
}{
	{"heading", 0, "Welcome to paper"},
	{"paragraph", 0, "Every line is a block. Enter splits a block, Backspace at its start merges it back."},
	{"list", 0, "Tab indents a block under the one above"},
	{"list", 1, "Shift+Tab outdents it again"},
	{"list", 1, "Alt+Up and Alt+Down move a block with everything nested under it"},
	{"todo", 0, "Ctrl+T turns a block into another type by name"},
	{"divider", 0, ""},
	{"blockquote", 0, "Drag a block by its handle to move it. Ctrl+Q quits."},
}

// welcomeOutline builds the welcome document from reg. Types the registry
// does not know fall back to its default type.
func welcomeOutline(reg *schema.Registry) block.Sequence {
	seq := make(block.Sequence, 0, len(welcome))
	for _, w := range welcome {
		t := w.typ
		if _, err := reg.Find(t); err != nil {
			t = reg.DefaultSchema().Type
		}
		b, err := reg.CreateBlock(t, schema.TextAndIndent(w.text, w.indent))
		if err != nil {
			continue
		}
		seq = append(seq, b)
	}
	return seq
}
