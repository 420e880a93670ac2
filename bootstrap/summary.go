package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/validator-gateway/component"
	"github.com/kbukum/validator-gateway/server"
)

// Summary renders the startup report: infrastructure, routes and live health.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a new startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes the summary to w. Components implementing
// component.Describable are listed under infrastructure.
func (s *Summary) Display(ctx context.Context, w io.Writer, registry *component.Registry, routes []server.Route) {
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	var infra []component.Description
	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			infra = append(infra, desc)
		}
	}
	if len(infra) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, desc := range infra {
			details := desc.Details
			if desc.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, desc.Port)
			}
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", branch(i, len(infra)), desc.Name, desc.Type, details)
		}
		fmt.Fprintf(w, "\n")
	}

	var api, system []server.Route
	for _, r := range routes {
		if r.System {
			system = append(system, r)
		} else {
			api = append(api, r)
		}
	}
	if len(api) > 0 {
		fmt.Fprintf(w, "🌐 Routes (%d)\n", len(api))
		for i, r := range api {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", branch(i, len(api)), r.Method, r.Path, r.Handler)
		}
		fmt.Fprintf(w, "\n")
	}
	if len(system) > 0 {
		paths := make([]string, 0, len(system))
		for _, r := range system {
			paths = append(paths, r.Path)
		}
		fmt.Fprintf(w, "🔧 System: %s\n\n", strings.Join(paths, " "))
	}

	health := registry.HealthAll(ctx)
	if len(health) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}
	fmt.Fprintf(w, "🏥 Health Check\n")
	healthy := 0
	for i, h := range health {
		msg := ""
		if h.Message != "" {
			msg = " — " + h.Message
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(health)), healthStatusIcon(h.Status), h.Name, h.Status, msg)
		if h.Status == component.StatusHealthy {
			healthy++
		}
	}
	if healthy == len(health) {
		fmt.Fprintf(w, "\n✅ All components healthy (%d/%d)\n\n", healthy, len(health))
	} else {
		fmt.Fprintf(w, "\n⚠️  Some components have issues (%d/%d healthy)\n\n", healthy, len(health))
	}
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
