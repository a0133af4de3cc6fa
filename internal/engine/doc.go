// Package engine groups the editing core of paper.
//
// The core is split into sub-packages that build on each other:
//
//   - block: blocks, IDs, attributes and sequences
//   - schema: the registry of block types
//   - grapheme: user-perceived character offsets
//   - paper: the ordered block store with staged transactions and commits
//   - command: the structural commands (indent, split, combine, move and so on)
//   - cursor: the focused block and selection, kept valid across commits
//   - loop: callbacks deferred until the next committed render
//
// Commands never touch the terminal. They stage writes inside a paper
// transaction and the host commits once per input event, so listeners see
// one coherent sequence per change.
package engine
