package errors

import (
	"errors"
	"fmt"
)

// Core error types shared across the service

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")

	// ErrExternal indicates an upstream/external service failure
	ErrExternal = errors.New("external service error")
)

// LLM and tool orchestration errors

var (
	// ErrLLMTimeout indicates the model call exceeded its deadline.
	// Fatal for the request: the orchestration loop never retries model calls.
	ErrLLMTimeout = errors.New("llm call timed out")

	// ErrLLMUnavailable indicates the model backend could not be reached
	ErrLLMUnavailable = errors.New("llm backend unavailable")

	// ErrToolNotFound indicates the model requested an unregistered tool
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolFailed indicates a tool execution failed; recoverable at the
	// conversation level (the failure is reported back to the model)
	ErrToolFailed = errors.New("tool execution failed")

	// ErrRateLimitExceeded indicates the provider rate limit was hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Intake flow errors

var (
	// ErrSessionNotFound indicates a conversation session is missing or expired
	ErrSessionNotFound = errors.New("conversation session not found")

	// ErrApplicationIncomplete indicates an application has not reached COMPLETE
	ErrApplicationIncomplete = errors.New("application incomplete")
)

// ValidationError carries a field-level rejection from the dialogue engine
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

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
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
