package classify

import (
	"github.com/kbukum/apiclient/transport"
)

// Classifier holds the client-level message table merged over the defaults.
// It is immutable and safe for concurrent use.
type Classifier struct {
	messages map[int]string
}

// New creates a Classifier. The given table overrides DefaultMessages.
func New(messages map[int]string) *Classifier {
	return &Classifier{messages: Merge(builtinMessages, messages)}
}

// Message resolves the message for status; call-level entries win.
func (c *Classifier) Message(status int, call map[int]string) string {
	if msg, ok := call[status]; ok {
		return msg
	}
	if msg, ok := c.messages[status]; ok {
		return msg
	}
	return GenericMessage
}

// Classify returns the success payload, or the APIError for a failure status.
// When responseHeader is set and present on a success response, its value is
// the payload instead of the body.
func (c *Classifier) Classify(resp *transport.Response, call map[int]string, responseHeader string) (any, *APIError) {
	body := DecodeBody(resp)

	if !resp.OK() {
		return nil, &APIError{
			Name:       ErrorName,
			Message:    c.Message(resp.Status, call),
			URL:        resp.URL,
			Status:     resp.Status,
			StatusText: resp.StatusText,
			Body:       body,
		}
	}

	if responseHeader != "" {
		if v := resp.Header.Get(responseHeader); v != "" {
			return v, nil
		}
	}
	return body, nil
}
