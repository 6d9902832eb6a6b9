package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo functions when the requested record does not
// exist. It is the "absent" result of single-record reads and of updates that
// target an unknown id; it is never used for backend failures.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when an insert or patch payload fails validation
// (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule, such as
// a second itinerary for the same trip day.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// invalid builds an ErrValidation-wrapped error with a field-level message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func requireID(field string, v int64) error {
	if v <= 0 {
		return invalid("%s must be a positive id", field)
	}
	return nil
}

func optionalID(field string, v *int64) error {
	if v != nil {
		return requireID(field, *v)
	}
	return nil
}

// validCurrency reports whether code looks like an ISO 4217 code.
func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func optionalCurrency(field string, v *string) error {
	if v != nil && !validCurrency(*v) {
		return invalid("%s must be a 3-letter uppercase currency code", field)
	}
	return nil
}

func ratingInRange(field string, v *float64, lo, hi float64) error {
	if v != nil && (*v < lo || *v > hi) {
		return invalid("%s must be between %g and %g", field, lo, hi)
	}
	return nil
}
