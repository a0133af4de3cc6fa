// Package mouse translates mouse input into editor actions.
//
// The handler asks a HitTester, normally the renderer's last layout,
// which block and region sit under the pointer:
//
//   - Pressing on a block's handle starts a drag of that block's group.
//     Moving over other blocks emits "editor.dragOver" so the view can
//     show the drop indicator, and releasing emits "editor.drop".
//   - Pressing on text focuses the block at that grapheme offset. The
//     action's Count holds the click count (1, 2 or 3).
//   - The wheel scrolls the view.
//
// Handler is safe for concurrent use.
package mouse
