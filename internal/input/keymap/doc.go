// Package keymap maps key presses to action names.
//
// A Keymap is a named set of bindings from a key specification to an
// action. The Registry layers keymaps by priority, so user bindings from
// the config file shadow the defaults. A binding with an empty action
// masks the same key in lower layers.
//
//	reg := keymap.NewRegistry()
//	reg.Register(keymap.Default())
//	reg.Register(keymap.NewKeymap("user").WithPriority(keymap.PriorityUser).
//	    Add("Ctrl+J", "editor.moveDown"))
//
//	if b, ok := reg.Lookup(ev); ok {
//	    // dispatch b.Action
//	}
package keymap
