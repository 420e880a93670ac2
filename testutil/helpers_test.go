package testutil

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/validator-gateway/component"
)

type fakeComponent struct {
	healthyAfter time.Time
	started      atomic.Bool
	stopped      atomic.Bool
	startErr     error
}

func (f *fakeComponent) Name() string { return "fake" }
func (f *fakeComponent) Start(context.Context) error {
	f.started.Store(true)
	return f.startErr
}
func (f *fakeComponent) Stop(context.Context) error {
	f.stopped.Store(true)
	return nil
}
func (f *fakeComponent) Health(context.Context) component.Health {
	if time.Now().Before(f.healthyAfter) {
		return component.Health{Name: "fake", Status: component.StatusUnhealthy, Message: "warming up"}
	}
	return component.Health{Name: "fake", Status: component.StatusHealthy}
}

func TestSetup_StopsOnCleanup(t *testing.T) {
	c := &fakeComponent{}
	t.Run("inner", func(t *testing.T) {
		T(t).Setup(c)
		if !c.started.Load() {
			t.Error("expected component started")
		}
	})
	if !c.stopped.Load() {
		t.Error("expected component stopped after the subtest")
	}
}

func TestWaitHealthy(t *testing.T) {
	c := &fakeComponent{healthyAfter: time.Now().Add(30 * time.Millisecond)}
	T(t).RequireStatus(c, component.StatusUnhealthy)
	T(t).WaitHealthy(c, time.Second)
	T(t).RequireStatus(c, component.StatusHealthy)
}

// recordingTB captures Fatalf without stopping the calling test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}
func (r *recordingTB) Fatalf(string, ...any) {
	r.failed = true
}

func TestSetup_StartFailure(t *testing.T) {
	rec := &recordingTB{TB: t}
	T(rec).Setup(&fakeComponent{startErr: errors.New("boom")})
	if !rec.failed {
		t.Error("expected start failure to fail the test")
	}
}
