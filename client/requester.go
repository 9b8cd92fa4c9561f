package client

import (
	"context"

	"github.com/kbukum/apiclient/classify"
	"github.com/kbukum/apiclient/dispatch"
	"github.com/kbukum/apiclient/logger"
	"github.com/kbukum/apiclient/request"
	"github.com/kbukum/apiclient/transport"
)

// Requester turns an operation into an in-flight call. Build errors are
// returned before anything is sent.
type Requester interface {
	Request(ctx context.Context, op request.Operation) (*dispatch.Handle, error)
}

// RequesterFactory creates the Requester for a client. It receives the
// client's copy of the configuration and its assembled transport.
type RequesterFactory func(cfg Config, t transport.Transport, log *logger.Logger) Requester

// HTTPRequest is the default Requester.
type HTTPRequest struct {
	builder    *request.Builder
	dispatcher *dispatch.Dispatcher
}

// NewHTTPRequest creates the default Requester over t.
func NewHTTPRequest(cfg Config, t transport.Transport, log *logger.Logger) *HTTPRequest {
	return &HTTPRequest{
		builder: request.NewBuilder(cfg.Base, cfg.Version, cfg.Headers),
		dispatcher: dispatch.New(t,
			dispatch.WithCredentials(cfg.Credentials()),
			dispatch.WithClassifier(classify.New(cfg.ErrorMessages)),
			dispatch.WithLogger(log),
		),
	}
}

// Request builds op and dispatches it.
func (r *HTTPRequest) Request(ctx context.Context, op request.Operation) (*dispatch.Handle, error) {
	desc, err := r.builder.Build(op)
	if err != nil {
		return nil, err
	}
	return r.dispatcher.Dispatch(ctx, desc), nil
}

// Builder returns the request builder.
func (r *HTTPRequest) Builder() *request.Builder {
	return r.builder
}

// Dispatcher returns the dispatcher.
func (r *HTTPRequest) Dispatcher() *dispatch.Dispatcher {
	return r.dispatcher
}
