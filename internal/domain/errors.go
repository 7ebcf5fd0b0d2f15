// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrNilTrack is returned when a nil track is handed to a list.
	ErrNilTrack = errors.New("track is nil")

	// ErrNotPlaying is returned when an operation needs a playing track and there is none.
	ErrNotPlaying = errors.New("no track is currently playing")

	// ErrEmptyList is returned when an operation requires a non-empty list.
	ErrEmptyList = errors.New("list is empty")

	// ErrNotFound is returned when a search or navigation finds nothing.
	ErrNotFound = errors.New("no matching track")

	// ErrUnknownCommand is returned when command input is not recognized.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidConfig is returned when configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotConnected is returned when a server-backed adapter has no connection.
	ErrNotConnected = errors.New("not connected")

	// ErrScanCancelled is returned when a library scan is canceled.
	ErrScanCancelled = errors.New("scan cancelled")
)

// AdapterError represents an error from an adapter talking to the outside world.
// This wraps low-level library errors with additional context.
type AdapterError struct {
	Adapter string // Adapter name (e.g., "mpd", "metadata")
	Op      string // Operation that failed (e.g., "dial", "status")
	Target  string // Address or path (if applicable)
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s failed for '%s': %v", e.Adapter, e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Adapter, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *AdapterError) Unwrap() error {
	return e.Err
}

// NewAdapterError creates a new AdapterError.
func NewAdapterError(adapter, op, target string, err error) *AdapterError {
	return &AdapterError{
		Adapter: adapter,
		Op:      op,
		Target:  target,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "Songlist", "Cursor")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
