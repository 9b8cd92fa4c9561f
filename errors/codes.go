package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Build-time errors, raised before a request is dispatched.
const (
	// ErrCodeInvalidInput indicates an operation or configuration is malformed.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required parameter is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a parameter value cannot be encoded.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Credential errors
const (
	// ErrCodeAuthFailed indicates the token provider failed to produce a token.
	ErrCodeAuthFailed ErrorCode = "AUTH_FAILED"
)

// Transport errors
const (
	// ErrCodeConnectionFailed indicates the transport could not complete the exchange.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the caller's deadline expired in flight.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Cancellation
const (
	// ErrCodeCancelled indicates the call was aborted before it settled.
	ErrCodeCancelled ErrorCode = "CANCELLED"
)

// Internal errors
const (
	// ErrCodeInternal indicates a programming error inside the runtime.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AbortedMessage is the stable message carried by every cancellation error.
const AbortedMessage = "Request aborted"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsRetryableCode reports whether a caller could reasonably retry after an
// error with this code. The runtime itself never retries.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
