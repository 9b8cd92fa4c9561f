package client

import (
	"context"

	"github.com/kbukum/apiclient/dispatch"
	"github.com/kbukum/apiclient/request"
	"github.com/kbukum/apiclient/result"
)

// Pending is an in-flight call whose payload decodes into T.
type Pending[T any] struct {
	handle *dispatch.Handle
}

// Call builds and dispatches op. The result is awaited as (T, error).
func Call[T any](ctx context.Context, c *Client, op request.Operation) (*Pending[T], error) {
	h, err := c.Request(ctx, op)
	if err != nil {
		return nil, err
	}
	return &Pending[T]{handle: h}, nil
}

// Cancel aborts the call if it has not settled and reports whether it did.
func (p *Pending[T]) Cancel() bool {
	return p.handle.Cancel()
}

// Done is closed when the call settles.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.handle.Done()
}

// Handle returns the underlying dispatch handle.
func (p *Pending[T]) Handle() *dispatch.Handle {
	return p.handle
}

// Await blocks until the call settles. API errors are returned as
// *classify.APIError.
func (p *Pending[T]) Await() (T, error) {
	return result.Throw[T](p.handle.Outcome())
}

// AwaitContext is Await bounded by ctx. An expired ctx does not cancel the call.
func (p *Pending[T]) AwaitContext(ctx context.Context) (T, error) {
	o, err := p.handle.Wait(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return result.Throw[T](o)
}

// Either presents the same call as a result.Either.
func (p *Pending[T]) Either() *PendingEither[T] {
	return &PendingEither[T]{p: p}
}

// PendingEither is an in-flight call awaited as a result.Either.
type PendingEither[T any] struct {
	p *Pending[T]
}

// CallEither builds and dispatches op. API errors are reported as Left;
// cancellation and transport failures are still errors.
func CallEither[T any](ctx context.Context, c *Client, op request.Operation) (*PendingEither[T], error) {
	p, err := Call[T](ctx, c, op)
	if err != nil {
		return nil, err
	}
	return p.Either(), nil
}

// Cancel aborts the call if it has not settled and reports whether it did.
func (p *PendingEither[T]) Cancel() bool {
	return p.p.Cancel()
}

// Done is closed when the call settles.
func (p *PendingEither[T]) Done() <-chan struct{} {
	return p.p.Done()
}

// Await blocks until the call settles.
func (p *PendingEither[T]) Await() (result.Either[T], error) {
	return result.ToEither[T](p.p.handle.Outcome())
}
