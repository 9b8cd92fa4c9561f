package client

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/apiclient/dispatch"
	"github.com/kbukum/apiclient/logger"
	"github.com/kbukum/apiclient/observability"
	"github.com/kbukum/apiclient/request"
	"github.com/kbukum/apiclient/resilience"
	"github.com/kbukum/apiclient/transport"
	"github.com/kbukum/apiclient/version"
)

const componentName = "apiclient"

// Client executes operations against one API. It is safe for concurrent use.
type Client struct {
	config    Config
	transport transport.Transport
	requester Requester
	log       *logger.Logger
}

type options struct {
	transport  transport.Transport
	factory    RequesterFactory
	log        *logger.Logger
	middleware []transport.Middleware
	metrics    *observability.Metrics
	tracing    bool
	tracer     trace.TracerProvider
	requestIDs bool
}

// Option configures a Client.
type Option func(*options)

// WithTransport replaces the default net/http transport.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithRequester replaces the default Requester factory.
func WithRequester(f RequesterFactory) Option {
	return func(o *options) { o.factory = f }
}

// WithLogger sets the client logger, overriding Config.Logging.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMiddleware adds transport middleware. The first is outermost.
func WithMiddleware(mws ...transport.Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mws...) }
}

// WithMetrics records call metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracing traces each exchange. A nil provider uses the global one.
func WithTracing(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracing = true
		o.tracer = tp
	}
}

// WithRequestIDs tags every request with a fresh X-Request-ID.
func WithRequestIDs() Option {
	return func(o *options) { o.requestIDs = true }
}

// New builds a Client. cfg is validated and copied.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		if cfg.Logging.Level != "" {
			log = logger.New(&cfg.Logging, componentName)
		} else {
			log = logger.Nop()
		}
	}

	base := o.transport
	if base == nil {
		h, err := transport.NewHTTPFromConfig(cfg.HTTP)
		if err != nil {
			return nil, err
		}
		base = h
	}

	mws := append([]transport.Middleware{}, o.middleware...)
	if o.tracing {
		mws = append(mws, transport.WithTracing(o.tracer))
	}
	mws = append(mws, transport.WithMetrics(o.metrics))
	if o.requestIDs {
		mws = append(mws, transport.WithRequestID())
	}
	mws = append(mws,
		transport.WithLogging(log.WithComponent("transport")),
		transport.WithLimiter(resilience.New(componentName, cfg.Limits)),
		transport.WithUserAgent(version.UserAgent()),
	)
	t := transport.Chain(base, mws...)

	factory := o.factory
	if factory == nil {
		factory = func(cfg Config, t transport.Transport, log *logger.Logger) Requester {
			return NewHTTPRequest(cfg, t, log)
		}
	}

	return &Client{
		config:    cfg,
		transport: t,
		requester: factory(cfg, t, log),
		log:       log,
	}, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config.clone()
}

// Transport returns the assembled transport, middleware included.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Request builds and dispatches op.
func (c *Client) Request(ctx context.Context, op request.Operation) (*dispatch.Handle, error) {
	return c.requester.Request(ctx, op)
}
