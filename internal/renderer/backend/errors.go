package backend

import "errors"

var (
	// ErrClosed is returned after Shutdown.
	ErrClosed = errors.New("backend: closed")

	// ErrEventQueueFull is returned when a synthetic event cannot be
	// queued.
	ErrEventQueueFull = errors.New("backend: event queue full")
)
