// Package errors provides structured error types for FitFuel.
//
// Errors crossing a package boundary should use these types so handlers
// can map them to HTTP statuses and Pub/Sub retry decisions consistently.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error identifier for categorization.
type ErrorCode string

// Common error codes used throughout FitFuel.
const (
	// Catalog errors
	CodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	CodeCatalogInvalid     ErrorCode = "CATALOG_INVALID"

	// Plan errors
	CodePlanNotFound ErrorCode = "PLAN_NOT_FOUND"
	CodePlanInvalid  ErrorCode = "PLAN_INVALID"

	// Infrastructure errors
	CodeStorageError ErrorCode = "STORAGE_ERROR"
	CodePubSubError  ErrorCode = "PUBSUB_ERROR"
	CodeSecretError  ErrorCode = "SECRET_ERROR"

	// General errors
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
	CodeTimeoutError    ErrorCode = "TIMEOUT_ERROR"
)

// FitFuelError is the base error type for all FitFuel errors.
type FitFuelError struct {
	Code      ErrorCode         // Unique error code for categorization
	Message   string            // Human-readable error message
	Cause     error             // Underlying error (if any)
	Retryable bool              // Whether the operation can be retried
	Metadata  map[string]string // Additional context
}

// Error implements the error interface.
func (e *FitFuelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *FitFuelError) Unwrap() error {
	return e.Cause
}

// Is matches on error code, so a wrapped sentinel compares equal to the
// bare sentinel.
func (e *FitFuelError) Is(target error) bool {
	t, ok := target.(*FitFuelError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *FitFuelError) WithCause(cause error) *FitFuelError {
	return &FitFuelError{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     cause,
		Retryable: e.Retryable,
		Metadata:  e.Metadata,
	}
}

// WithMessage adds a custom message.
func (e *FitFuelError) WithMessage(msg string) *FitFuelError {
	return &FitFuelError{
		Code:      e.Code,
		Message:   msg,
		Cause:     e.Cause,
		Retryable: e.Retryable,
		Metadata:  e.Metadata,
	}
}

// WithMetadata adds contextual metadata.
func (e *FitFuelError) WithMetadata(key, value string) *FitFuelError {
	meta := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return &FitFuelError{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     e.Cause,
		Retryable: e.Retryable,
		Metadata:  meta,
	}
}

// Pre-defined sentinel errors for common cases.
// Use these with errors.Is() or wrap them with .WithCause().
var (
	ErrCatalogUnavailable = &FitFuelError{Code: CodeCatalogUnavailable, Message: "exercise catalog unavailable", Retryable: true}
	ErrCatalogInvalid     = &FitFuelError{Code: CodeCatalogInvalid, Message: "invalid exercise catalog", Retryable: false}

	ErrPlanNotFound = &FitFuelError{Code: CodePlanNotFound, Message: "plan not found", Retryable: false}
	ErrPlanInvalid  = &FitFuelError{Code: CodePlanInvalid, Message: "invalid plan", Retryable: false}

	ErrStorageError = &FitFuelError{Code: CodeStorageError, Message: "storage error", Retryable: true}
	ErrPubSubError  = &FitFuelError{Code: CodePubSubError, Message: "pubsub error", Retryable: true}
	ErrSecretError  = &FitFuelError{Code: CodeSecretError, Message: "secret access error", Retryable: true}

	ErrValidation = &FitFuelError{Code: CodeValidationError, Message: "validation error", Retryable: false}
	ErrInternal   = &FitFuelError{Code: CodeInternalError, Message: "internal error", Retryable: false}
	ErrTimeout    = &FitFuelError{Code: CodeTimeoutError, Message: "timeout", Retryable: true}
)

// New creates a new FitFuelError with the given code and message.
func New(code ErrorCode, message string) *FitFuelError {
	return &FitFuelError{
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// NewRetryable creates a new retryable FitFuelError.
func NewRetryable(code ErrorCode, message string) *FitFuelError {
	return &FitFuelError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// Wrap wraps an error with a FitFuelError.
func Wrap(cause error, code ErrorCode, message string) *FitFuelError {
	return &FitFuelError{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: false,
	}
}

// WrapRetryable wraps an error with a retryable FitFuelError.
func WrapRetryable(cause error, code ErrorCode, message string) *FitFuelError {
	return &FitFuelError{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: true,
	}
}

// IsRetryable checks if an error is retryable. Wrapped FitFuelErrors are
// found through the chain.
func IsRetryable(err error) bool {
	var fe *FitFuelError
	if stderrors.As(err, &fe) {
		return fe.Retryable
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var fe *FitFuelError
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	return CodeInternalError
}
