package transport

import (
	"context"
	"net/http"
)

// Options carries everything but the URL needed to send a request.
type Options struct {
	Method string
	Header http.Header
	Body   []byte
}

// Response is a fully read HTTP response.
type Response struct {
	// Status is the HTTP status code.
	Status int
	// StatusText is the reason phrase, e.g. "Not Found".
	StatusText string
	// URL is the final URL of the exchange.
	URL    string
	Header http.Header
	Body   []byte
}

// OK reports whether Status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Transport sends one request and returns its response. Implementations must
// honour ctx cancellation.
type Transport interface {
	RoundTrip(ctx context.Context, url string, opts Options) (*Response, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, url string, opts Options) (*Response, error)

// RoundTrip calls f.
func (f Func) RoundTrip(ctx context.Context, url string, opts Options) (*Response, error) {
	return f(ctx, url, opts)
}

type operationKey struct{}

// WithOperation annotates ctx with the logical operation name so middleware
// can label logs and spans.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey{}, name)
}

// OperationFromContext returns the operation name stored by WithOperation.
func OperationFromContext(ctx context.Context) string {
	name, _ := ctx.Value(operationKey{}).(string)
	return name
}
