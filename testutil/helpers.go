package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/validator-gateway/component"
)

// THelper binds component helpers to a test.
type THelper struct {
	t   testing.TB
	ctx context.Context
}

// T wraps a test to provide helper methods.
func T(t testing.TB) *THelper {
	return &THelper{t: t, ctx: context.Background()}
}

// WithContext sets the context passed to Start, Stop and Health.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// Setup starts c and stops it when the test ends.
func (h *THelper) Setup(c component.Component) {
	h.t.Helper()
	if err := c.Start(h.ctx); err != nil {
		h.t.Fatalf("failed to start component %s: %v", c.Name(), err)
	}
	h.t.Cleanup(func() {
		if err := c.Stop(context.WithoutCancel(h.ctx)); err != nil {
			h.t.Errorf("failed to stop component %s: %v", c.Name(), err)
		}
	})
}

// WaitHealthy polls c until it reports healthy or timeout passes.
func (h *THelper) WaitHealthy(c component.Component, timeout time.Duration) {
	h.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		health := c.Health(h.ctx)
		if health.Status == component.StatusHealthy {
			return
		}
		if time.Now().After(deadline) {
			h.t.Fatalf("component %s not healthy after %s: %s %s", c.Name(), timeout, health.Status, health.Message)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// RequireStatus fails the test unless c reports status.
func (h *THelper) RequireStatus(c component.Component, status component.HealthStatus) {
	h.t.Helper()
	if got := c.Health(h.ctx); got.Status != status {
		h.t.Fatalf("component %s: expected %s, got %s %s", c.Name(), status, got.Status, got.Message)
	}
}
