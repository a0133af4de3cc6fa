// Package editor provides the gesture handlers of the paper editor.
//
// Gestures translate keys and pointer events into block commands. They are
// grouped by concern:
//
//   - StructureHandler: enter, backspace, tab, toggleList, turnInto and
//     keyboard moves of a block group.
//   - NavigationHandler: caret moves within and across blocks, and clicks.
//   - TextHandler: text input and character deletion.
//   - DragHandler: dragging a block group by its handle.
//
// CombinedHandler registers all of them under the "editor" namespace.
package editor
