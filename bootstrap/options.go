package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/validator-gateway/backend"
	"github.com/kbukum/validator-gateway/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	channel         backend.Channel
	gracefulTimeout *time.Duration
	summaryOut      io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger instead of building one from the logging
// section of the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithChannel replaces the TCP connection to the validator. A channel that
// also implements component.Component is started and stopped with the app.
func WithChannel(ch backend.Channel) Option {
	return func(o *appOptions) {
		o.channel = ch
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithSummaryOutput redirects the startup summary, stdout by default.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}
