package command

import "errors"

// Errors returned by commands and guards.
var (
	// ErrSelfContainingMove indicates a destination inside the moved group.
	// MoveTo treats it as a no-op; CanMoveTo reports it.
	ErrSelfContainingMove = errors.New("destination is inside the moved group")

	// ErrNoPaper indicates a context without a paper.
	ErrNoPaper = errors.New("command context has no paper")

	// ErrNoSchema indicates a context without a schema registry.
	ErrNoSchema = errors.New("command context has no schema")

	// ErrUnknownCommand indicates a name missing from the command table.
	ErrUnknownCommand = errors.New("unknown command")
)
