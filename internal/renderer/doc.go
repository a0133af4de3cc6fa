// Package renderer draws the committed block sequence on a backend.
//
// The renderer is responsible for:
//   - Laying out blocks as rows: handle column, indent, marker and text
//   - Wrapping text at grapheme cluster boundaries
//   - Placing the caret and highlighting the selection
//   - Drawing drop indicators while a block is dragged
//   - The status line and prompt
//   - Mapping screen positions back to blocks for the mouse
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  Layout  │  Viewport  │  StatusLine     │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ Memory (tests)      │
//	└─────────────────────────────────────────┘
//
// The renderer only sees committed snapshots. Subscribe OnChange to the
// paper; the next Render lays out the new sequence and applies any
// pending reveal.
//
// Usage:
//
//	be, _ := backend.NewTerminal()
//	r := renderer.New(be, reg, tracker, renderer.DefaultOptions())
//	p.Subscribe(r.OnChange)
//	r.Render()
package renderer
