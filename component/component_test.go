package component

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/validator-gateway/logger"
)

type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "backend", Details: "tcp://localhost:4004"}
}

func newRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newRegistry()
	if err := r.Register(&mockComponent{name: "backend"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := r.Register(&mockComponent{name: "backend"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{name: "backend"})

	got := r.Get("backend")
	if got == nil || got.Name() != "backend" {
		t.Fatalf("expected registered component, got %v", got)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAll(t *testing.T) {
	r := newRegistry()
	order := []string{}

	_ = r.Register(&describedComponent{mockComponent{name: "backend", startOrder: &order}})
	_ = r.Register(&mockComponent{name: "http-server", startOrder: &order})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	if len(order) != 2 || order[0] != "backend" || order[1] != "http-server" {
		t.Errorf("expected start order [backend, http-server], got %v", order)
	}
	if len(r.All()) != 2 {
		t.Errorf("expected 2 components, got %d", len(r.All()))
	}
}

func TestStartAllError(t *testing.T) {
	r := newRegistry()
	order := []string{}
	_ = r.Register(&mockComponent{name: "backend", startErr: fmt.Errorf("bad address")})
	_ = r.Register(&mockComponent{name: "http-server", startOrder: &order})

	if err := r.StartAll(context.Background()); err == nil {
		t.Error("expected error from StartAll")
	}
	if len(order) != 0 {
		t.Errorf("components after the failure must not start, got %v", order)
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := newRegistry()
	order := []string{}

	_ = r.Register(&mockComponent{name: "backend", stopOrder: &order})
	_ = r.Register(&mockComponent{name: "dispatcher", stopOrder: &order})
	_ = r.Register(&mockComponent{name: "http-server", stopOrder: &order})

	_ = r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	if len(order) != 3 || order[0] != "http-server" || order[2] != "backend" {
		t.Errorf("expected reverse stop order, got %v", order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := newRegistry()
	order := []string{}
	_ = r.Register(&mockComponent{name: "backend", stopOrder: &order})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{name: "backend", stopErr: fmt.Errorf("stop failed")})
	_ = r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestHealthAll(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{
		name:   "backend",
		health: Health{Name: "backend", Status: StatusUnhealthy, Message: "not connected"},
	})
	_ = r.Register(&mockComponent{
		name:   "http-server",
		health: Health{Name: "http-server", Status: StatusHealthy},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusUnhealthy || results[1].Status != StatusHealthy {
		t.Errorf("unexpected health results %+v", results)
	}
}
