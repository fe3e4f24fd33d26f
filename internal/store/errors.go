package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotOwned: the row exists but does not belong to the user.
	// Boundaries must treat this like a missing row and leak nothing.
	ErrNotOwned = errors.New("not owned by user")
)

// ValidationError is a user-correctable input problem; its message is
// safe to show directly.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
