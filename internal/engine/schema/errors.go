package schema

import (
	"errors"
	"fmt"

	"github.com/dshills/paper/internal/engine/block"
)

// Errors returned by schema operations.
var (
	// ErrUnknownType indicates a lookup for an unregistered block type.
	// It is a configuration error and is not recoverable by the user.
	ErrUnknownType = errors.New("unknown block type")

	// ErrNoDefault indicates a registry without a default definition.
	ErrNoDefault = errors.New("schema has no default block type")

	// ErrDuplicateType indicates a type registered twice.
	ErrDuplicateType = errors.New("duplicate block type")

	// ErrMultipleDefaults indicates more than one default definition.
	ErrMultipleDefaults = errors.New("multiple default block types")

	// ErrInvalidDefinition indicates a definition without a type tag.
	ErrInvalidDefinition = errors.New("invalid block definition")
)

// UnknownTypeError reports an unregistered type together with the closest
// registered type name, if any is reasonably close.
type UnknownTypeError struct {
	Type       block.Type
	Suggestion block.Type
}

func (e *UnknownTypeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v: %q (did you mean %q?)", ErrUnknownType, e.Type, e.Suggestion)
	}
	return fmt.Sprintf("%v: %q", ErrUnknownType, e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}
