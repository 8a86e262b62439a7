package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrValidation marks malformed identity fields. It is never the result
	// of a network call.
	ErrValidation = errors.New("identity validation failed")

	// ErrSigning marks a key that passed validation but could not sign.
	ErrSigning = errors.New("token signing failed")
)

// ValidationError describes the first identity field that failed the
// format checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// SigningError wraps a failure from the underlying signature scheme.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing token: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *SigningError) Unwrap() error {
	return e.Err
}

// Is reports ErrSigning as a match so callers need not know the cause.
func (e *SigningError) Is(target error) bool {
	return target == ErrSigning
}
