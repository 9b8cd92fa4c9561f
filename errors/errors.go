package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the runtime's structured error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if a caller could retry the call.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Build-time ---

// InvalidInput creates an error for a malformed operation or configuration.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, fmt.Sprintf("invalid input: %s", reason))
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation creates an error for struct validation failures.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField creates an error for a missing required parameter.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("missing required parameter: %s", field)).
		WithDetail("field", field)
}

// InvalidFormat creates an error for a parameter that cannot be encoded.
func InvalidFormat(field string, cause error) *AppError {
	return New(ErrCodeInvalidFormat, fmt.Sprintf("cannot encode parameter %s", field)).
		WithDetail("field", field).
		WithCause(cause)
}

// --- Call-time ---

// AuthFailed wraps a token provider failure.
func AuthFailed(cause error) *AppError {
	return New(ErrCodeAuthFailed, "token provider failed").WithCause(cause)
}

// ConnectionFailed wraps a transport failure for the given URL.
func ConnectionFailed(url string, cause error) *AppError {
	return New(ErrCodeConnectionFailed, fmt.Sprintf("request to %s failed", url)).
		WithDetail("url", url).
		WithCause(cause)
}

// Timeout wraps an expired caller deadline.
func Timeout(url string, cause error) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("request to %s timed out", url)).
		WithDetail("url", url).
		WithCause(cause)
}

// Cancelled creates the cancellation error. Its message always contains
// AbortedMessage regardless of what the transport reported.
func Cancelled(cause error) *AppError {
	return New(ErrCodeCancelled, AbortedMessage).WithCause(cause)
}

// Internal creates an error for a runtime programming error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "unexpected runtime error").WithCause(cause)
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsCancelled reports whether err is a cancellation error.
func IsCancelled(err error) bool {
	return HasCode(err, ErrCodeCancelled)
}
