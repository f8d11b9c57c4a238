package keycluster

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration classifies every error caused by an invalid Config.
	// It is reported before any clustering work starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrInput classifies errors caused by the value source, such as a
	// missing column.
	ErrInput = errors.New("input error")

	// ErrUnknownParam is returned for params the selected method does not
	// accept.
	ErrUnknownParam = errors.New("unknown parameter")

	// ErrMissingParam is returned when a required param is absent.
	ErrMissingParam = errors.New("missing parameter")

	// ErrInvalidParam is returned for a param of the wrong type or range.
	ErrInvalidParam = errors.New("invalid parameter")
)

// ConfigError reports which part of a Config was rejected.
//
// It matches ErrConfiguration with errors.Is, and the underlying error can be
// accessed via errors.Unwrap.
type ConfigError struct {
	Field string
	Value any
	cause error
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Field, e.cause)
	}
	return fmt.Sprintf("configuration error: %s=%v: %v", e.Field, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func configError(field string, value any, cause error) error {
	return &ConfigError{Field: field, Value: value, cause: cause}
}

// InputError reports a value source that could not provide the requested
// column.
//
// It matches ErrInput with errors.Is, and the underlying error can be
// accessed via errors.Unwrap.
type InputError struct {
	Column string
	cause  error
}

func (e *InputError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("input error: %v", e.cause)
	}
	return fmt.Sprintf("input error: column %q: %v", e.Column, e.cause)
}

func (e *InputError) Unwrap() error { return e.cause }

// Is reports whether target is ErrInput.
func (e *InputError) Is(target error) bool { return target == ErrInput }
