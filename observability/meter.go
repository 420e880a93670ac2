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
	"go.opentelemetry.io/otel/sdk/resource"
)

// initMeter builds an OTLP HTTP meter provider and installs it globally.
func initMeter(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the gateway's instruments.
type Metrics struct {
	attemptTotal    metric.Int64Counter
	attemptDuration metric.Float64Histogram
	retryTotal      metric.Int64Counter
	pending         metric.Int64UpDownCounter
	lateTotal       metric.Int64Counter
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	attemptTotal, err := meter.Int64Counter("gateway.dispatch.attempts",
		metric.WithDescription("Backend request attempts by message type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.dispatch.attempts counter: %w", err)
	}

	attemptDuration, err := meter.Float64Histogram("gateway.dispatch.duration",
		metric.WithDescription("Time from send to resolution of one attempt"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.dispatch.duration histogram: %w", err)
	}

	retryTotal, err := meter.Int64Counter("gateway.dispatch.retries",
		metric.WithDescription("Attempts repeated after queue-full or not-ready"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.dispatch.retries counter: %w", err)
	}

	pending, err := meter.Int64UpDownCounter("gateway.dispatch.pending",
		metric.WithDescription("Requests awaiting a backend response"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.dispatch.pending gauge: %w", err)
	}

	lateTotal, err := meter.Int64Counter("gateway.dispatch.late_responses",
		metric.WithDescription("Responses discarded because their request was already resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.dispatch.late_responses counter: %w", err)
	}

	requestTotal, err := meter.Int64Counter("gateway.http.requests",
		metric.WithDescription("HTTP requests by route and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.http.requests counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("gateway.http.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway.http.duration histogram: %w", err)
	}

	return &Metrics{
		attemptTotal:    attemptTotal,
		attemptDuration: attemptDuration,
		retryTotal:      retryTotal,
		pending:         pending,
		lateTotal:       lateTotal,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}, nil
}

// MustMetrics is NewMetrics for meters that cannot fail, such as the no-op meter.
func MustMetrics(meter metric.Meter) *Metrics {
	m, err := NewMetrics(meter)
	if err != nil {
		panic(err)
	}
	return m
}

// RecordAttempt records one resolved backend attempt.
func (m *Metrics) RecordAttempt(ctx context.Context, messageType, outcome string, d time.Duration) {
	m.attemptTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrMessageType, messageType),
		attribute.String(AttrOutcome, outcome),
	))
	m.attemptDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrMessageType, messageType),
	))
}

// RecordRetry records a backoff before a repeated attempt.
func (m *Metrics) RecordRetry(ctx context.Context, messageType, reason string) {
	m.retryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrMessageType, messageType),
		attribute.String(AttrOutcome, reason),
	))
}

// AddPending adjusts the number of in-flight requests.
func (m *Metrics) AddPending(ctx context.Context, n int64) {
	m.pending.Add(ctx, n)
}

// RecordLateResponse records a discarded response.
func (m *Metrics) RecordLateResponse(ctx context.Context, messageType string) {
	m.lateTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrMessageType, messageType)))
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPRoute, route),
		attribute.Int(AttrHTTPStatus, status),
	))
	m.requestDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPRoute, route),
	))
}
