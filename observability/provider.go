package observability

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/validator-gateway/logger"
)

// Provider owns the exporters installed by Setup.
type Provider struct {
	meter  *sdkmetric.MeterProvider
	tracer *sdktrace.TracerProvider
}

// Setup installs OTLP meter and tracer providers when cfg.Enabled is set.
// Otherwise it returns an empty Provider and the global no-op providers stay.
func Setup(ctx context.Context, cfg Config, service, version, environment string, log *logger.Logger) (*Provider, error) {
	if !cfg.Enabled {
		log.Debug("telemetry export disabled")
		return &Provider{}, nil
	}

	res, err := newResource(service, version, environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp, err := initMeter(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	tp, err := initTracer(ctx, cfg, res)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, err
	}

	log.Info("telemetry export enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
		"sample_rate", cfg.SampleRate,
	))
	return &Provider{meter: mp, tracer: tp}, nil
}

// Enabled reports whether exporters are installed.
func (p *Provider) Enabled() bool {
	return p.meter != nil
}

// Shutdown flushes and stops the exporters.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
	}
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}
	return stderrors.Join(errs...)
}

func newResource(service, version, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String(AttrServiceName, service),
			attribute.String(AttrServiceVersion, version),
			attribute.String(AttrEnvironment, environment),
		),
	)
}
