package loantracker

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every error reporting invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound reports a borrower id that is not in the collection an operation works on.
	ErrNotFound = errors.New("borrower not found")

	// ErrAmbiguous reports a borrower reference that matches more than one borrower.
	ErrAmbiguous = errors.New("ambiguous borrower reference")

	// ErrStorage is wrapped by errors coming from the Store.
	ErrStorage = errors.New("storage error")
)

// ValidationError describes which field of an input is invalid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns ErrValidation, so that every ValidationError matches it with errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(id string) error { return fmt.Errorf("%w: %q", ErrNotFound, id) }
