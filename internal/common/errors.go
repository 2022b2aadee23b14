// Package common provides shared utilities and error values used across the
// application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNotFound signals a lookup miss at the storage layer.
	ErrNotFound = errors.New("not found")

	// ErrParseFailure signals that the CSV collaborator could not produce
	// rows for an import.
	ErrParseFailure = errors.New("statement parse failure")

	// ErrMissingConfig signals required configuration is absent.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig signals configuration that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
