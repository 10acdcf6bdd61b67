package saka

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/saka/internal/apperr"
	"github.com/starford/saka/internal/julian"
)

// Validated entry points only accept four digit years.
const (
	MinYear = 1000
	MaxYear = 9999
)

func validateYear(year int) error {
	if err := validation.Validate(year,
		validation.Required, validation.Min(MinYear), validation.Max(MaxYear),
	); err != nil {
		return &apperr.FieldError{Field: "year", Value: year, Err: apperr.ErrInvalidYear}
	}
	return nil
}

func validateMonth(month int) error {
	if err := validation.Validate(month,
		validation.Required, validation.Min(1), validation.Max(12),
	); err != nil {
		return &apperr.FieldError{Field: "month", Value: month, Err: apperr.ErrInvalidMonth}
	}
	return nil
}

func validateDay(day, length int) error {
	if err := validation.Validate(day,
		validation.Required, validation.Min(1), validation.Max(length),
	); err != nil {
		return &apperr.FieldError{Field: "day", Value: day, Err: apperr.ErrInvalidDay}
	}
	return nil
}

// validateCount checks the non-negative count taken by the arithmetic methods.
func validateCount(name string, n int) error {
	if err := validation.Validate(n, validation.Min(0)); err != nil {
		return &apperr.FieldError{Field: name, Value: n, Err: apperr.ErrInvalidArgument}
	}
	return nil
}

// Validate checks that year, month and day name an existing Saka date with
// a four digit year. The day is checked against the actual month length.
func Validate(year, month, day int) error {
	if err := validateYear(year); err != nil {
		return err
	}
	if err := validateMonth(month); err != nil {
		return err
	}
	return validateDay(day, monthLength(year, month))
}

// ValidateGregorian is Validate for a proleptic Gregorian date.
func ValidateGregorian(year, month, day int) error {
	if err := validateYear(year); err != nil {
		return err
	}
	if err := validateMonth(month); err != nil {
		return err
	}
	return validateDay(day, julian.DaysInMonth(year, month))
}
