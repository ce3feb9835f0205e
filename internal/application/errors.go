package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrNotHydrated         = errors.New("deck store not hydrated")
	ErrConfirmationPending = errors.New("another action is waiting for confirmation")
	ErrNothingPending      = errors.New("no action is waiting for confirmation")
	ErrSessionClosed       = errors.New("edit session is closed")
	ErrMalformedImport     = errors.New("malformed import document")
	ErrInvalidAction       = errors.New("invalid action")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ImportError represents an import document that could not be applied
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot import deck: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot import deck: %s", e.Reason)
}

func (e *ImportError) Is(target error) bool {
	return target == ErrMalformedImport
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// CardNotFoundError reports a lookup miss for a card ID
type CardNotFoundError struct {
	ID int
}

func (e *CardNotFoundError) Error() string {
	return fmt.Sprintf("card %d not found", e.ID)
}

func (e *CardNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
