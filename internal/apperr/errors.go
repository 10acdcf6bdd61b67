// Package apperr defines the error values shared by the calendar packages
// and their transports.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidDay      = errors.New("invalid day")
	ErrInvalidArgument = errors.New("invalid argument")
)

// FieldError reports which input field failed validation and its value.
// It unwraps to one of the sentinel errors above.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrInvalidArgument)
}
