package request

import (
	"github.com/kbukum/apiclient/validation"
)

// Operation describes one logical API call.
type Operation struct {
	// Name identifies the operation in logs and traces (e.g. "getCallWithoutParametersAndResponse").
	Name string `json:"name"`
	// Method is the HTTP method.
	Method string `json:"method" validate:"required,oneof=GET PUT POST DELETE OPTIONS HEAD PATCH"`
	// URL is the path template, e.g. "/api/v{api-version}/parameters/{parameterPath}".
	URL string `json:"url" validate:"required,urltemplate"`

	Path     map[string]any `json:"path,omitempty"`
	Query    map[string]any `json:"query,omitempty"`
	Headers  map[string]any `json:"headers,omitempty"`
	Cookies  map[string]any `json:"cookies,omitempty"`
	FormData map[string]any `json:"form_data,omitempty"`
	Body     any            `json:"body,omitempty"`

	// MediaType overrides the inferred Content-Type of Body.
	MediaType string `json:"media_type,omitempty"`
	// ResponseHeader, when set, makes the value of that response header the
	// success payload instead of the body.
	ResponseHeader string `json:"response_header,omitempty"`
	// Errors maps status codes to messages for this operation. Entries win
	// over the client-level table.
	Errors map[int]string `json:"errors,omitempty"`
}

// Validate checks the static shape of the operation.
func (o *Operation) Validate() error {
	return validation.Validate(o)
}
