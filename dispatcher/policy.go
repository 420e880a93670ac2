package dispatcher

import (
	"fmt"
	"time"

	"github.com/kbukum/validator-gateway/resilience"
)

// RetryPolicy controls how often and how fast a request is repeated after the
// validator reports a full queue or no usable state.
type RetryPolicy struct {
	// MaxAttempts counts the first attempt.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// BaseBackoff is the delay after the first failed attempt. It doubles
	// after every further failure.
	BaseBackoff time.Duration `yaml:"base_backoff" mapstructure:"base_backoff"`
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
	// TimeoutPerAttempt bounds the wait for one response.
	TimeoutPerAttempt time.Duration `yaml:"timeout_per_attempt" mapstructure:"timeout_per_attempt"`
}

// DefaultRetryPolicy returns three attempts backing off 100ms, 200ms with a
// 300s response timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		BaseBackoff:       100 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		TimeoutPerAttempt: 300 * time.Second,
	}
}

// ApplyDefaults fills zero fields from DefaultRetryPolicy.
func (p *RetryPolicy) ApplyDefaults() {
	d := DefaultRetryPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.BaseBackoff <= 0 {
		p.BaseBackoff = d.BaseBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = d.MaxBackoff
	}
	if p.TimeoutPerAttempt <= 0 {
		p.TimeoutPerAttempt = d.TimeoutPerAttempt
	}
}

// Validate validates the policy.
func (p *RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.MaxBackoff < p.BaseBackoff {
		return fmt.Errorf("retry.max_backoff (%s) must not be below retry.base_backoff (%s)",
			p.MaxBackoff, p.BaseBackoff)
	}
	if p.TimeoutPerAttempt <= 0 {
		return fmt.Errorf("retry.timeout_per_attempt must be positive")
	}
	return nil
}

func (p RetryPolicy) retryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    p.MaxAttempts,
		InitialBackoff: p.BaseBackoff,
		MaxBackoff:     p.MaxBackoff,
		BackoffFactor:  2,
		RetryIf:        retryable,
	}
}
