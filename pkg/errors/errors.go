package errors

import (
	"context"
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")

	// ErrNotImplemented indicates a code path that is not supported yet
	ErrNotImplemented = errors.New("not implemented")
)

// Startup errors

var (
	// ErrMissingAPIKey indicates the required platform secret is not set
	ErrMissingAPIKey = errors.New("PHI_API_KEY not found in environment")

	// ErrInvalidConfig indicates an agents configuration file that cannot be used
	ErrInvalidConfig = errors.New("invalid agents configuration")
)

// External API errors

var (
	// ErrExternal indicates an upstream API returned an error response
	ErrExternal = errors.New("external API error")

	// ErrRateLimitExceeded indicates API rate limit exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidSymbol indicates an unknown ticker symbol
	ErrInvalidSymbol = errors.New("invalid ticker symbol")
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// MultiError wraps multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("multiple errors (%d): %v", len(m.Errors), m.Errors[0])
}

// Unwrap exposes every collected error to errors.Is / errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the list
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (m *MultiError) HasErrors() bool {
	return len(m.Errors) > 0
}

// ToError returns the MultiError as an error, or nil if no errors
func (m *MultiError) ToError() error {
	if !m.HasErrors() {
		return nil
	}
	return m
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join combines errors, dropping nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Kind classifies err by the first sentinel it wraps. The result is used as a
// metrics label and tracker tag, so the set of values is small and fixed.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var vErr *ValidationError
	switch {
	case Is(err, ErrMissingAPIKey):
		return "missing_api_key"
	case Is(err, ErrInvalidConfig):
		return "invalid_config"
	case Is(err, ErrRateLimitExceeded):
		return "rate_limited"
	case Is(err, ErrInvalidSymbol):
		return "invalid_symbol"
	case Is(err, ErrExternal), Is(err, ErrUnavailable):
		return "external"
	case Is(err, ErrTimeout), Is(err, context.DeadlineExceeded):
		return "timeout"
	case Is(err, context.Canceled):
		return "canceled"
	case Is(err, ErrNotFound):
		return "not_found"
	case Is(err, ErrInvalidInput), As(err, &vErr):
		return "invalid_input"
	default:
		return "internal"
	}
}
