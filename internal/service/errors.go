package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrUnauthorized is returned when admin credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when an operation would overwrite existing data.
	ErrConflict = errors.New("conflict")
	// ErrNotConfigured is returned when a required integration has no credentials.
	ErrNotConfigured = errors.New("not configured")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is lets callers match validation errors with ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Error is a categorized error whose message is safe to show to clients.
// Kind is one of the package sentinels.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	errNoFileStore = newError(ErrNotConfigured, "Dropbox access token not configured")
	errNoModel     = newError(ErrNotConfigured, "ANTHROPIC_API_KEY not configured")
	errNoPaper     = newError(ErrNotFound, "Paper not found")
)

func requirePaperID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "paperId", Message: "Paper ID is required"}
	}
	return nil
}

// UpstreamError is a failed call to the file store or the model.
// Err carries the upstream client's message.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExternalService, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is lets callers match upstream failures with ErrExternalService.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrExternalService
}

// externalError marks err as a failure of an upstream service.
func externalError(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
