package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/validator-gateway/api"
	"github.com/kbukum/validator-gateway/backend"
	"github.com/kbukum/validator-gateway/component"
	"github.com/kbukum/validator-gateway/config"
	"github.com/kbukum/validator-gateway/dispatcher"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/observability"
	"github.com/kbukum/validator-gateway/server"
	"github.com/kbukum/validator-gateway/version"
)

// App is the assembled gateway: a validator channel, the dispatcher that
// correlates its traffic and the HTTP server in front of both.
type App struct {
	Name       string
	Version    string
	Cfg        *config.GatewayConfig
	Components *component.Registry
	Logger     *logger.Logger
	Server     *server.Server
	Dispatcher *dispatcher.Dispatcher
	Summary    *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// New validates cfg and wires the gateway. Nothing is started until Run.
func New(ctx context.Context, cfg *config.GatewayConfig, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if cfg.Service.Version == "" {
		cfg.Service.Version = version.Get().Version
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	log := o.logger
	if log == nil {
		log = logger.New(&cfg.Logging, cfg.Service.Name)
	}

	app := &App{
		Name:            cfg.Service.Name,
		Version:         cfg.Service.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(log),
		Logger:          log,
		Summary:         NewSummary(cfg.Service.Name, cfg.Service.Version),
		gracefulTimeout: 15 * time.Second,
		summaryOut:      os.Stdout,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.summaryOut != nil {
		app.summaryOut = o.summaryOut
	}

	telemetry, err := observability.Setup(ctx, cfg.Observability, cfg.Service.Name, cfg.Service.Version, cfg.Service.Environment, log)
	if err != nil {
		return nil, fmt.Errorf("telemetry setup: %w", err)
	}
	app.OnStop(telemetry.Shutdown)
	metrics := observability.MustMetrics(observability.Meter(cfg.Service.Name))

	channel := o.channel
	if channel == nil {
		channel = backend.NewStreamChannel(cfg.Backend, log)
	}
	// The dispatcher binds itself to the channel before anything is sent.
	app.Dispatcher = dispatcher.New(channel, cfg.Retry, log, dispatcher.WithMetrics(metrics))

	app.Server = server.New(cfg.Server, log)
	app.Server.ApplyMiddleware(metrics)
	app.Server.RegisterDefaultEndpoints(cfg.Service.Name, app.Components.HealthAll)
	api.NewHandler(app.Dispatcher, api.Config{
		MaxBodySize: cfg.Server.MaxBodySize,
		Timeout:     cfg.TimeoutDuration(),
	}, log).Register(app.Server.GinEngine())

	// Stopped in reverse: the server drains before the channel closes.
	if c, ok := channel.(component.Component); ok {
		if err := app.Components.Register(c); err != nil {
			return nil, err
		}
	}
	if err := app.Components.Register(app.Server); err != nil {
		return nil, err
	}
	return app, nil
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts the gateway, blocks until SIGINT, SIGTERM or ctx is done, then
// shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		_ = a.Shutdown()
		return err
	}
	a.Logger.Info("gateway ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.Shutdown()
}

// Start runs the startup sequence: components, OnStart hooks, ready check,
// OnReady hooks and the summary.
func (a *App) Start(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("starting gateway", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	// An unreachable validator is not fatal at startup.
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.Display(ctx, a.summaryOut, a.Components, a.Server.Routes())
	return nil
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown runs the OnStop hooks and stops all components within the
// graceful timeout.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down gateway", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("component shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	// Telemetry flushes in an OnStop hook, after the components are down.
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook failed", logger.Fields(logger.FieldError, err.Error()))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("gateway shutdown complete")
	return shutdownErr
}
