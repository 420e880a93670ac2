// Package observability wires OpenTelemetry metrics and tracing for the
// gateway.
//
// Export is optional. With Config.Enabled false the global no-op providers stay
// in place and every instrument still works, it just records nothing:
//
//	p, err := observability.Setup(ctx, cfg.Observability, "validator-gateway", version.Get().Version, "production", log)
//	defer p.Shutdown(ctx)
//
//	m, err := observability.NewMetrics(observability.Meter("dispatcher"))
//	m.RecordAttempt(ctx, "CLIENT_BATCH_SUBMIT_REQUEST", "ok", elapsed)
package observability
