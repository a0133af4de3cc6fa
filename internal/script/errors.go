package script

import "errors"

var (
	// ErrStateClosed indicates the engine has been closed.
	ErrStateClosed = errors.New("script: state closed")

	// ErrDisabled indicates scripting is turned off in the configuration.
	ErrDisabled = errors.New("script: scripting disabled")

	// ErrTimeout indicates a script ran past its time limit.
	ErrTimeout = errors.New("script: timeout")

	// ErrNoFunction indicates a registered action lost its Lua function.
	ErrNoFunction = errors.New("script: function not registered")
)
