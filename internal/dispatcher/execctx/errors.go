package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingPaper indicates the paper is required but not set.
	ErrMissingPaper = errors.New("execution context: paper is required")

	// ErrMissingSchema indicates the schema registry is required but not set.
	ErrMissingSchema = errors.New("execution context: schema is required")

	// ErrMissingCursor indicates the caret is required but not set.
	ErrMissingCursor = errors.New("execution context: cursor is required")
)
