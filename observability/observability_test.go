package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/validator-gateway/logger"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetrics_RecordAttempt(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	m.RecordAttempt(ctx, "CLIENT_BATCH_SUBMIT_REQUEST", "ok", 10*time.Millisecond)
	m.RecordAttempt(ctx, "CLIENT_BATCH_SUBMIT_REQUEST", "ok", 20*time.Millisecond)
	m.RecordAttempt(ctx, "CLIENT_BATCH_SUBMIT_REQUEST", "queue_full", 5*time.Millisecond)
	m.AddPending(ctx, 2)
	m.AddPending(ctx, -1)

	got := collect(t, reader)

	attempts, ok := got["gateway.dispatch.attempts"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected int64 sum for attempts, got %T", got["gateway.dispatch.attempts"].Data)
	}
	counts := map[string]int64{}
	for _, dp := range attempts.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key(AttrOutcome))
		counts[v.AsString()] = dp.Value
	}
	if counts["ok"] != 2 || counts["queue_full"] != 1 {
		t.Errorf("unexpected attempt counts %v", counts)
	}

	pending, ok := got["gateway.dispatch.pending"].Data.(metricdata.Sum[int64])
	if !ok || len(pending.DataPoints) != 1 || pending.DataPoints[0].Value != 1 {
		t.Errorf("expected pending 1, got %+v", got["gateway.dispatch.pending"].Data)
	}
}

func TestMetrics_NoopMeter(t *testing.T) {
	m := MustMetrics(noop.NewMeterProvider().Meter("test"))
	ctx := context.Background()
	m.RecordAttempt(ctx, "x", "ok", time.Millisecond)
	m.RecordRetry(ctx, "x", "not_ready")
	m.RecordLateResponse(ctx, "x")
	m.RecordRequest(ctx, "GET", "/blocks", 200, time.Millisecond)
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{}, "svc", "dev", "test", logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Enabled() {
		t.Error("expected disabled provider")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown of empty provider failed: %v", err)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanDispatch)
	defer span.End()
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.Interval != 15*time.Second || cfg.SampleRate != 1.0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.SampleRate = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}
}
