// Package view provides handlers for scrolling the rendered paper.
//
// View actions never change the document. They answer with a ViewUpdate
// that the dispatcher hands to the renderer.
package view
