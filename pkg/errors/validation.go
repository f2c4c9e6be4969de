package errors

import (
	"errors"
	"fmt"
)

// ValidationError reports a configuration or option value that was rejected.
type ValidationError struct {
	Value any    `json:"value"` // The rejected value.
	Field string `json:"field"` // Config key or option name, e.g. "block_size".
	Err   error  `json:"error"` // Why the value was rejected.
}

// NewValidationError creates a new ValidationError instance.
func NewValidationError(field string, value any, err error) *ValidationError {
	return &ValidationError{
		Err:   err,
		Field: field,
		Value: value,
	}
}

func (e *ValidationError) Error() string {
	switch {
	case e.Err == nil:
		return "validation error"
	case e.Field == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if a given error is of type ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError attempts to extract a ValidationError from a given error.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
