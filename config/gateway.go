package config

import (
	"fmt"
	"time"

	"github.com/kbukum/validator-gateway/backend"
	"github.com/kbukum/validator-gateway/dispatcher"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/observability"
	"github.com/kbukum/validator-gateway/server"
)

// Defaults of the top-level settings.
const (
	DefaultBind          = "http://127.0.0.1:8008"
	DefaultConnect       = "tcp://localhost:4004"
	DefaultTimeout       = 300.0
	DefaultClientMaxSize = server.DefaultMaxBodySize
)

// GatewayConfig is the complete gateway configuration. The top-level keys
// mirror the command line; the nested sections tune individual components.
type GatewayConfig struct {
	Service ServiceConfig `yaml:"service" mapstructure:"service"`

	// Bind is the HTTP listen URL.
	Bind string `yaml:"bind" mapstructure:"bind"`
	// Connect is the validator endpoint.
	Connect string `yaml:"connect" mapstructure:"connect"`
	// Timeout is the validator response timeout in seconds.
	Timeout float64 `yaml:"timeout" mapstructure:"timeout"`
	// ClientMaxSize bounds request bodies in bytes.
	ClientMaxSize int64 `yaml:"client_max_size" mapstructure:"client_max_size"`
	// Verbose raises the log level: 0 warn, 1 info, 2 debug.
	Verbose int `yaml:"verbose" mapstructure:"verbose"`

	Retry         dispatcher.RetryPolicy `yaml:"retry" mapstructure:"retry"`
	Backend       backend.Config         `yaml:"backend" mapstructure:"backend"`
	Server        server.Config          `yaml:"server" mapstructure:"server"`
	Logging       logger.Config          `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config   `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset values and pushes the top-level settings down
// into the component sections that did not set their own.
func (c *GatewayConfig) ApplyDefaults() {
	c.Service.ApplyDefaults()
	if c.Bind == "" {
		c.Bind = DefaultBind
	}
	if c.Connect == "" {
		c.Connect = DefaultConnect
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ClientMaxSize == 0 {
		c.ClientMaxSize = DefaultClientMaxSize
	}

	// A malformed bind is reported by Validate.
	if c.Server.Host == "" && c.Server.Port == 0 {
		_ = c.Server.SetBind(c.Bind)
	}
	if c.Server.MaxBodySize == 0 {
		c.Server.MaxBodySize = c.ClientMaxSize
	}
	if c.Backend.Address == "" {
		c.Backend.Address = c.Connect
	}
	if c.Retry.TimeoutPerAttempt == 0 && c.Timeout > 0 {
		c.Retry.TimeoutPerAttempt = c.TimeoutDuration()
	}
	if c.Verbose > 0 || c.Logging.Level == "" {
		c.Logging.Level = logger.LevelForVerbosity(c.Verbose)
	}

	c.Retry.ApplyDefaults()
	c.Backend.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates the configuration and every section.
func (c *GatewayConfig) Validate() error {
	if err := c.Service.Validate(); err != nil {
		return err
	}
	if err := (&server.Config{}).SetBind(c.Bind); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got: %v)", c.Timeout)
	}
	if c.ClientMaxSize <= 0 {
		return fmt.Errorf("client_max_size must be positive (got: %d)", c.ClientMaxSize)
	}
	if c.Verbose < 0 {
		return fmt.Errorf("verbose must be non-negative (got: %d)", c.Verbose)
	}
	if err := c.Retry.Validate(); err != nil {
		return err
	}
	if err := c.Backend.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return c.Observability.Validate()
}

// TimeoutDuration returns Timeout as a duration.
func (c *GatewayConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// Load reads the gateway configuration with the given loader options, then
// applies defaults and validates it.
func Load(opts ...LoaderOption) (*GatewayConfig, error) {
	cfg := &GatewayConfig{}
	if err := LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
