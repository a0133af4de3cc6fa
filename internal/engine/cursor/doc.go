// Package cursor tracks the editor's single caret.
//
// A Cursor names the focused block and a linear selection inside its text,
// with offsets counted in grapheme clusters. The selection uses the
// anchor/focus model of command.Selection: the anchor is where the
// selection started and the focus is where typing happens. When both are
// equal the selection is a plain caret.
//
// A Tracker holds the cursor between events. After every commit the host
// calls Sync with the committed sequence so that a cursor left on a removed
// block, or past the end of shortened text, is moved somewhere valid.
//
// Cursor values are immutable. Tracker is safe for concurrent use.
package cursor
