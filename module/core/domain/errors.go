package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = errors.New("invalid radius")
	// ErrInvalidInterval marks stored attendance that cannot be trusted, such as a
	// clock-out earlier than its clock-in.
	ErrInvalidInterval = errors.New("invalid attendance interval")
	ErrShiftOpen       = errors.New("shift already open")
	ErrNoOpenShift     = errors.New("no open shift")
	ErrOutsideGeofence = errors.New("outside geofence")
)

// ValidationError captures field level issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
	cause       error
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Wrap attaches a sentinel so errors.Is keeps working through the validation error.
func (v *ValidationError) Wrap(cause error) *ValidationError {
	v.cause = cause
	return v
}

func (v *ValidationError) Unwrap() error {
	return v.cause
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v.FieldErrors[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
