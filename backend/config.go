package backend

import (
	"fmt"
	"net/url"
	"time"
)

// Config configures the connection to the validator.
type Config struct {
	// Address is the validator endpoint, e.g. tcp://localhost:4004.
	Address string `yaml:"address" mapstructure:"address"`
	// DialTimeout bounds a single connection attempt.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	// SendTimeout bounds how long Send waits for room in the outbound queue.
	SendTimeout time.Duration `yaml:"send_timeout" mapstructure:"send_timeout"`
	// SendQueue is the capacity of the outbound queue.
	SendQueue int `yaml:"send_queue" mapstructure:"send_queue"`
	// ReconnectBackoff is the delay before the first redial.
	ReconnectBackoff time.Duration `yaml:"reconnect_backoff" mapstructure:"reconnect_backoff"`
	// MaxReconnectBackoff caps the redial delay.
	MaxReconnectBackoff time.Duration `yaml:"max_reconnect_backoff" mapstructure:"max_reconnect_backoff"`
	// MaxFrameSize bounds inbound frames.
	MaxFrameSize int `yaml:"max_frame_size" mapstructure:"max_frame_size"`
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.Address == "" {
		c.Address = "tcp://localhost:4004"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 10 * time.Second
	}
	if c.SendQueue <= 0 {
		c.SendQueue = 1024
	}
	if c.ReconnectBackoff <= 0 {
		c.ReconnectBackoff = 100 * time.Millisecond
	}
	if c.MaxReconnectBackoff <= 0 {
		c.MaxReconnectBackoff = 10 * time.Second
	}
	if c.MaxFrameSize <= 0 {
		c.MaxFrameSize = 64 << 20
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.HostPort(); err != nil {
		return err
	}
	if c.MaxReconnectBackoff < c.ReconnectBackoff {
		return fmt.Errorf("backend.max_reconnect_backoff (%s) must not be below backend.reconnect_backoff (%s)",
			c.MaxReconnectBackoff, c.ReconnectBackoff)
	}
	return nil
}

// HostPort returns the dial target of Address.
func (c *Config) HostPort() (string, error) {
	u, err := url.Parse(c.Address)
	if err != nil {
		return "", fmt.Errorf("backend.address %q: %w", c.Address, err)
	}
	if u.Scheme != "tcp" {
		return "", fmt.Errorf("backend.address %q: scheme must be tcp", c.Address)
	}
	if u.Host == "" || u.Port() == "" {
		return "", fmt.Errorf("backend.address %q: host and port are required", c.Address)
	}
	return u.Host, nil
}
