// Package resilience provides the retry loop shared by the dispatcher and the
// backend reconnect logic.
//
// Backoff grows as InitialBackoff * BackoffFactor^(attempt-1) and is capped at
// MaxBackoff. Jitter is opt-in; with Jitter 0 the schedule is exact:
//
//	cfg := resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: 100 * time.Millisecond}
//	res, err := resilience.Retry(ctx, cfg, func(attempt int) (*Result, error) {
//	    return send(ctx)
//	})
package resilience
