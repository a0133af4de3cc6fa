package loop

import "errors"

// ErrClosed is returned when posting to a closed loop.
var ErrClosed = errors.New("loop is closed")
