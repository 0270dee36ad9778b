package textkeeper_errors

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrAlreadyExists      = errors.New("already exists")
)

// ValidationError reports required fields that were absent or empty, and
// fields whose JSON value had the wrong type. It matches ErrInvalidInput
// under errors.Is.
type ValidationError struct {
	Fields  []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.Invalid) > 0:
		return "invalid field types: " + strings.Join(e.Invalid, ", ")
	case len(e.Fields) > 0:
		return "missing required fields: " + strings.Join(e.Fields, ", ")
	default:
		return "invalid input"
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Field is a named value checked by RequireFields.
type Field struct {
	Name  string
	Value string
}

// RequireFields returns a *ValidationError naming every empty field, or nil.
func RequireFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if f.Value == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
