package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPConfig configures the default transport. The zero value sets no
// timeout and uses system TLS settings.
type HTTPConfig struct {
	// Timeout bounds a whole exchange. Zero means none.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// TLS configures the underlying transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// NewHTTPFromConfig builds an HTTP transport from cfg.
func NewHTTPFromConfig(cfg HTTPConfig) (*HTTP, error) {
	if err := cfg.TLS.Validate(); err != nil {
		return nil, err
	}
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	if tlsCfg != nil {
		rt.TLSClientConfig = tlsCfg
	}
	return NewHTTP(&http.Client{Transport: rt, Timeout: cfg.Timeout}), nil
}

// HTTP is the default Transport backed by an *http.Client.
type HTTP struct {
	client *http.Client
}

// NewHTTP wraps client. A nil client uses a zero http.Client.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTP{client: client}
}

// Default returns a Transport using a zero http.Client.
func Default() *HTTP {
	return NewHTTP(nil)
}

// Client returns the underlying *http.Client.
func (t *HTTP) Client() *http.Client {
	return t.client
}

// RoundTrip sends the request and reads the whole body.
func (t *HTTP) RoundTrip(ctx context.Context, url string, opts Options) (*Response, error) {
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if opts.Header != nil {
		req.Header = opts.Header.Clone()
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil && resp.Request.URL.String() != req.URL.String() {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		URL:        finalURL,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found"),
// falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text, ok := strings.CutPrefix(resp.Status, code+" "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
