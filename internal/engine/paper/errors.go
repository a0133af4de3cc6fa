package paper

import "errors"

// Errors returned by paper operations.
var (
	// ErrBlockNotFound indicates an ID absent from the sequence.
	// Commands treat it as a no-op; lookups return it to callers that care.
	ErrBlockNotFound = errors.New("block not found")

	// ErrDuplicateID indicates a sequence that repeats a block ID.
	ErrDuplicateID = errors.New("duplicate block id")

	// ErrOutsideTransaction indicates a write outside a transaction on a
	// paper created with WithStrictWrites.
	ErrOutsideTransaction = errors.New("write outside transaction")

	// ErrClosed indicates an operation on a closed paper.
	ErrClosed = errors.New("paper is closed")
)
