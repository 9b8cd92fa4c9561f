// Package observability provides OpenTelemetry tracing and metrics for API
// calls made through the client.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("petstore-client"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartExchangeSpan(ctx, nil, "getPet", "GET", url)
//	defer span.End()
//	observability.EndExchangeSpan(span, resp.Status, resp.StatusText, err)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("petstore-client"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("petstore-client"))
//	metrics.RecordCallEnd(ctx, "getPet", "GET", observability.OutcomeSuccess, 200, duration)
package observability
