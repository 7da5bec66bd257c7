package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing entities and entities the caller is
	// not allowed to touch (e.g. marking someone else's notification).
	ErrNotFound = errors.New("not found")

	// ErrInvalidParent: the parent comment does not exist or belongs
	// to a different artwork.
	ErrInvalidParent = errors.New("invalid parent comment")

	// ErrVersionMismatch: the referenced version belongs to a
	// different artwork than the critique.
	ErrVersionMismatch = errors.New("version belongs to a different artwork")

	// ErrConflict: duplicate reaction from the same author on the
	// same target with the same kind.
	ErrConflict = errors.New("already reacted")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
