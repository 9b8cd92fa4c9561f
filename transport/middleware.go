package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/apiclient/logger"
	"github.com/kbukum/apiclient/observability"
	"github.com/kbukum/apiclient/resilience"
)

// Header names set by middleware.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserAgent = "User-Agent"
)

// Middleware wraps a Transport.
type Middleware func(Transport) Transport

// Chain wraps t so that the first middleware is the outermost.
func Chain(t Transport, mws ...Middleware) Transport {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			t = mws[i](t)
		}
	}
	return t
}

// withHeader returns opts with a cloned header that has name set to value,
// unless the header is already present.
func withHeader(opts Options, name, value string) Options {
	if opts.Header.Get(name) != "" {
		return opts
	}
	h := opts.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set(name, value)
	opts.Header = h
	return opts
}

// WithUserAgent sets User-Agent on requests that do not carry one.
func WithUserAgent(ua string) Middleware {
	return func(next Transport) Transport {
		return Func(func(ctx context.Context, url string, opts Options) (*Response, error) {
			return next.RoundTrip(ctx, url, withHeader(opts, HeaderUserAgent, ua))
		})
	}
}

// WithRequestID sets a random X-Request-ID on requests that do not carry one.
func WithRequestID() Middleware {
	return func(next Transport) Transport {
		return Func(func(ctx context.Context, url string, opts Options) (*Response, error) {
			return next.RoundTrip(ctx, url, withHeader(opts, HeaderRequestID, uuid.NewString()))
		})
	}
}

// WithLimiter gates each request on l. The slot is held until the response
// has been read.
func WithLimiter(l resilience.Limiter) Middleware {
	return func(next Transport) Transport {
		if l == nil {
			return next
		}
		return Func(func(ctx context.Context, url string, opts Options) (*Response, error) {
			release, err := l.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			defer release()
			return next.RoundTrip(ctx, url, opts)
		})
	}
}

// WithLogging logs each exchange at debug level.
func WithLogging(log *logger.Logger) Middleware {
	return func(next Transport) Transport {
		if log == nil {
			return next
		}
		return Func(func(ctx context.Context, url string, opts Options) (*Response, error) {
			fields := logger.RequestFields(OperationFromContext(ctx), opts.Method, url)
			if id := opts.Header.Get(HeaderRequestID); id != "" {
				fields[logger.FieldRequestID] = id
			}
			log.Debug("sending request", fields)

			start := time.Now()
			resp, err := next.RoundTrip(ctx, url, opts)
			fields = logger.MergeWithDuration(fields, time.Since(start))
			if err != nil {
				log.Debug("request failed", logger.MergeWithError(fields, err))
				return nil, err
			}
			fields[logger.FieldStatus] = resp.Status
			log.Debug("response received", fields)
			return resp, nil
		})
	}
}

// WithMetrics records call counts, durations and failures on m.
func WithMetrics(m *observability.Metrics) Middleware {
	return func(next Transport) Transport {
		if m == nil {
			return next
		}
		return Func(func(ctx context.Context, url string, opts Options) (*Response, error) {
			op := OperationFromContext(ctx)
			m.RecordCallStart(ctx)
			start := time.Now()

			resp, err := next.RoundTrip(ctx, url, opts)

			// Record on a context that outlives cancellation.
			rctx := context.WithoutCancel(ctx)
			switch {
			case err != nil && ctx.Err() == context.Canceled:
				m.RecordCallEnd(rctx, op, opts.Method, observability.OutcomeCancelled, 0, time.Since(start))
				m.RecordCancel(rctx, op)
			case err != nil:
				m.RecordCallEnd(rctx, op, opts.Method, observability.OutcomeError, 0, time.Since(start))
				m.RecordError(rctx, op, "transport")
			case !resp.OK():
				m.RecordCallEnd(rctx, op, opts.Method, observability.OutcomeAPIError, resp.Status, time.Since(start))
				m.RecordError(rctx, op, resp.StatusText)
			default:
				m.RecordCallEnd(rctx, op, opts.Method, observability.OutcomeSuccess, resp.Status, time.Since(start))
			}
			return resp, err
		})
	}
}

// WithTracing wraps each exchange in a client span and propagates the trace
// context in the request headers. A nil provider uses the global one.
func WithTracing(tp trace.TracerProvider) Middleware {
	return func(next Transport) Transport {
		return Func(func(ctx context.Context, url string, opts Options) (*Response, error) {
			ctx, span := observability.StartExchangeSpan(ctx, tp, OperationFromContext(ctx), opts.Method, url)
			defer span.End()

			h := opts.Header.Clone()
			if h == nil {
				h = make(http.Header)
			}
			otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(h))
			opts.Header = h

			resp, err := next.RoundTrip(ctx, url, opts)
			if err != nil {
				observability.EndExchangeSpan(span, 0, "", err)
				return nil, err
			}
			observability.EndExchangeSpan(span, resp.Status, resp.StatusText, nil)
			return resp, nil
		})
	}
}
