package client_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/apiclient/client"
	"github.com/kbukum/apiclient/observability"
)

func TestObservability_TracingAndMetrics(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(prev)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	m, err := observability.NewMetrics(mp.Meter("client-test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	api, _ := setup(t, client.Config{}, client.WithTracing(tp), client.WithMetrics(m))

	p, err := api.Simple.GetCallWithoutParametersAndResponse(context.Background())
	echo := await(t, p, err)
	if echo.Headers["traceparent"] == "" {
		t.Error("expected trace context to be propagated")
	}

	pe, err := api.Errors.TestErrorCode(context.Background(), 404)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	_, _ = pe.Await()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	ops := map[string]bool{}
	for _, s := range spans {
		for _, kv := range s.Attributes {
			if string(kv.Key) == observability.AttrOperationName {
				ops[kv.Value.AsString()] = true
			}
		}
	}
	if !ops["getCallWithoutParametersAndResponse"] || !ops["testErrorCode"] {
		t.Errorf("expected spans for both operations, got %v", ops)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if metric.Name != "apiclient.request.total" {
				continue
			}
			for _, dp := range metric.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value(observability.AttrOutcome)
				totals[v.AsString()] += dp.Value
			}
		}
	}
	if totals[observability.OutcomeSuccess] != 1 || totals[observability.OutcomeAPIError] != 1 {
		t.Errorf("unexpected call totals %v", totals)
	}
}
