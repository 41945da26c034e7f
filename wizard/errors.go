package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight is returned by Session.Submit while a previous
	// submission has not finished.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrNotAtFinalStep is returned when Submit is called before the review
	// step is reached.
	ErrNotAtFinalStep = errors.New("submit is only allowed from the final step")

	// ErrSessionClosed is returned once a session has been submitted or
	// discarded.
	ErrSessionClosed = errors.New("wizard session is closed")
)

// ValidationError is a user-input problem. Always recoverable: the caller
// surfaces Msg next to Field and leaves the draft untouched.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}
