// Package script runs user Lua scripts against the outline.
//
// Scripts execute in a sandboxed gopher-lua state. Only the base, table,
// string and math libraries are opened; file, process and module loading
// are unavailable. A global "paper" table exposes the document:
//
//	paper.blocks()                 -- array of {id, type, indent, text, attrs}
//	paper.indent(id)               -- true when the outline changed
//	paper.outdent(id)
//	paper.update_text(id, text)
//	paper.turn_into(id, type)
//	paper.split(id, anchor, focus)
//	paper.combine(id)
//	paper.move(id, dest)
//	paper.commit()
//	paper.register(name, fn)       -- exposes fn as the action "script.<name>"
//
// Mutations are dispatched as block actions, so they pass through the
// same hooks and command engine as keyboard input. A failed command
// raises a Lua error.
package script
