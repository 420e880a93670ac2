package server

import (
	"context"

	"github.com/kbukum/validator-gateway/component"
)

const componentName = "http-server"

var (
	_ component.Component   = (*Server)(nil)
	_ component.Describable = (*Server)(nil)
)

// Name returns the component name used for registration.
func (s *Server) Name() string { return componentName }

// Health reports whether the server is accepting connections.
func (s *Server) Health(_ context.Context) component.Health {
	s.mu.Lock()
	listening := s.listener != nil
	s.mu.Unlock()

	if listening {
		return component.Health{Name: componentName, Status: component.StatusHealthy}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusUnhealthy,
		Message: "HTTP server not listening",
	}
}

// Describe returns summary info for the startup display.
func (s *Server) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: "http://" + s.config.Addr(),
		Port:    s.config.Port,
	}
}
