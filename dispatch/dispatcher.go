package dispatch

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/apiclient/auth"
	"github.com/kbukum/apiclient/classify"
	"github.com/kbukum/apiclient/errors"
	"github.com/kbukum/apiclient/logger"
	"github.com/kbukum/apiclient/request"
	"github.com/kbukum/apiclient/result"
	"github.com/kbukum/apiclient/transport"
)

// Dispatcher sends descriptors through a transport. It holds no per-call
// state and is safe for concurrent use.
type Dispatcher struct {
	transport   transport.Transport
	classifier  *classify.Classifier
	credentials auth.Credentials
	log         *logger.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCredentials sets the credentials resolved before every call.
func WithCredentials(c auth.Credentials) Option {
	return func(d *Dispatcher) { d.credentials = c }
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.classifier = c
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a Dispatcher over t.
func New(t transport.Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport:  t,
		classifier: classify.New(nil),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.WithComponent("dispatch")
	return d
}

// Transport returns the transport requests are sent through.
func (d *Dispatcher) Transport() transport.Transport {
	return d.transport
}

// Dispatch starts the call described by desc and returns immediately.
// Cancelling ctx aborts the call like Handle.Cancel; an expired ctx deadline
// settles it with a TIMEOUT error.
func (d *Dispatcher) Dispatch(ctx context.Context, desc *request.Descriptor) *Handle {
	callCtx, abort := context.WithCancelCause(ctx)
	h := newHandle(abort)
	go d.run(callCtx, ctx, h, desc)
	return h
}

func (d *Dispatcher) run(ctx, parent context.Context, h *Handle, desc *request.Descriptor) {
	defer h.abort(nil)

	fields := logger.RequestFields(desc.Operation, desc.Method, desc.URL)
	start := time.Now()

	o := d.execute(ctx, parent, h, desc)

	fields = logger.MergeWithDuration(fields, time.Since(start))
	fields["outcome"] = o.Kind.String()
	if o.APIError != nil {
		fields[logger.FieldStatus] = o.APIError.Status
	}

	if !h.finish(stateFor(o), o) {
		d.log.Debug("call cancelled", fields)
		return
	}
	switch o.Kind {
	case result.KindFailed:
		d.log.Warn("call failed", logger.MergeWithError(fields, o.Cause))
	case result.KindCancelled:
		d.log.Debug("call cancelled", fields)
	default:
		d.log.Debug("call settled", fields)
	}
}

func stateFor(o result.Outcome) State {
	if o.Kind == result.KindCancelled {
		return StateCancelled
	}
	return StateSettled
}

// execute runs auth resolution, the transport call and classification, in
// that order.
func (d *Dispatcher) execute(ctx, parent context.Context, h *Handle, desc *request.Descriptor) (o result.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = result.Failed(errors.Internal(fmt.Errorf("panic during dispatch: %v", r)))
		}
	}()

	if d.transport == nil {
		return result.Failed(errors.Internal(stderrors.New("no transport configured")))
	}

	authorization, err := d.credentials.Authorization(ctx)
	if err != nil {
		if interrupted := d.interrupted(ctx, parent, desc.URL, err); interrupted != nil {
			return *interrupted
		}
		return result.Failed(err)
	}
	if ctx.Err() != nil {
		return *d.interrupted(ctx, parent, desc.URL, ctx.Err())
	}

	authed := desc.WithAuthorization(authorization)
	d.log.Debug("dispatching request", logger.RequestFields(desc.Operation, desc.Method, desc.URL))

	resp, err := d.transport.RoundTrip(transport.WithOperation(ctx, desc.Operation), authed.URL, transport.Options{
		Method: authed.Method,
		Header: authed.Header,
		Body:   authed.Body,
	})
	if err != nil {
		if interrupted := d.interrupted(ctx, parent, desc.URL, err); interrupted != nil {
			return *interrupted
		}
		return result.Failed(errors.ConnectionFailed(desc.URL, err))
	}
	if resp == nil {
		return result.Failed(errors.Internal(stderrors.New("transport returned no response")))
	}
	if !h.receive() {
		return result.Cancelled(errors.Cancelled(nil))
	}

	payload, apiErr := d.classifier.Classify(resp, desc.Errors, desc.ResponseHeader)
	if apiErr != nil {
		return result.Failure(apiErr)
	}
	return result.Success(payload)
}

// interrupted maps a context-caused failure to its outcome, or returns nil
// when ctx is still live.
func (d *Dispatcher) interrupted(ctx, parent context.Context, url string, err error) *result.Outcome {
	if ctx.Err() == nil {
		return nil
	}
	var o result.Outcome
	switch {
	case stderrors.Is(context.Cause(ctx), errAborted):
		o = result.Cancelled(errors.Cancelled(err))
	case stderrors.Is(parent.Err(), context.DeadlineExceeded):
		o = result.Failed(errors.Timeout(url, err))
	default:
		o = result.Cancelled(errors.Cancelled(err))
	}
	return &o
}
