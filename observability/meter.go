package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/apiclient/logger"
)

// Call outcomes used as the "outcome" metric attribute.
const (
	OutcomeSuccess   = "success"
	OutcomeAPIError  = "api_error"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// MeterConfig controls periodic export of call metrics.
type MeterConfig struct {
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Environment    string        `mapstructure:"environment"`
	Endpoint       string        `mapstructure:"endpoint"` // OTLP/HTTP collector host:port
	Insecure       bool          `mapstructure:"insecure"`
	Interval       time.Duration `mapstructure:"interval"` // zero keeps the SDK default
}

// DefaultMeterConfig exports to a local collector every 15s.
func DefaultMeterConfig(serviceName string) *MeterConfig {
	tc := DefaultTracerConfig(serviceName)
	return &MeterConfig{
		ServiceName:    tc.ServiceName,
		ServiceVersion: tc.ServiceVersion,
		Environment:    tc.Environment,
		Endpoint:       tc.Endpoint,
		Insecure:       tc.Insecure,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter %s: %w", config.Endpoint, err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("metric resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("metrics").Info("exporting metrics", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for every API call.
type Metrics struct {
	callTotal    metric.Int64Counter
	callDuration metric.Float64Histogram
	callActive   metric.Int64UpDownCounter
	errorTotal   metric.Int64Counter
	cancelTotal  metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	callTotal, err := meter.Int64Counter("apiclient.request.total",
		metric.WithDescription("Total number of API calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.request.total counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("apiclient.request.duration",
		metric.WithDescription("Duration of API calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.request.duration histogram: %w", err)
	}

	callActive, err := meter.Int64UpDownCounter("apiclient.request.active",
		metric.WithDescription("Number of API calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.request.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("apiclient.error.total",
		metric.WithDescription("Total failed API calls by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.error.total counter: %w", err)
	}

	cancelTotal, err := meter.Int64Counter("apiclient.cancel.total",
		metric.WithDescription("Total API calls cancelled before settling"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiclient.cancel.total counter: %w", err)
	}

	return &Metrics{
		callTotal:    callTotal,
		callDuration: callDuration,
		callActive:   callActive,
		errorTotal:   errorTotal,
		cancelTotal:  cancelTotal,
	}, nil
}

// RecordCallStart increments the in-flight call count.
func (m *Metrics) RecordCallStart(ctx context.Context) {
	m.callActive.Add(ctx, 1)
}

// RecordCallEnd decrements in-flight calls and records the completed call.
// status is 0 when no response was received.
func (m *Metrics) RecordCallEnd(ctx context.Context, operation, method, outcome string, status int, duration time.Duration) {
	m.callActive.Add(ctx, -1)
	m.callTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("method", method),
		attribute.String(AttrOutcome, outcome),
		attribute.Int("status", status),
	))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("method", method),
	))
}

// RecordError records a failed call by error code.
func (m *Metrics) RecordError(ctx context.Context, operation, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordCancel records a call cancelled before it settled.
func (m *Metrics) RecordCancel(ctx context.Context, operation string) {
	m.cancelTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}
