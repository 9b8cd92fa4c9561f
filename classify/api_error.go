package classify

import (
	"errors"
	"fmt"
)

// ErrorName is the fixed Name of every APIError.
const ErrorName = "ApiError"

// APIError is a well-formed response with a failure status.
type APIError struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	URL        string `json:"url"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	// Body is the decoded response payload.
	Body any `json:"body"`
}

func (e *APIError) Error() string {
	return e.Message
}

// String includes the status and URL, for logs.
func (e *APIError) String() string {
	return fmt.Sprintf("%s: %s (%d %s, %s)", e.Name, e.Message, e.Status, e.StatusText, e.URL)
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}
