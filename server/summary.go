package server

import (
	"sort"
	"strings"
)

// systemPaths are the operational endpoints registered by RegisterDefaultEndpoints.
var systemPaths = map[string]bool{
	"/health": true,
	"/ready":  true,
	"/info":   true,
}

// Route is one registered HTTP route as shown in the startup summary.
type Route struct {
	Method  string
	Path    string
	Handler string
	System  bool
}

// Routes returns the registered gin routes, API routes first (by path), then
// system routes.
func (s *Server) Routes() []Route {
	ginRoutes := s.engine.Routes()

	sort.Slice(ginRoutes, func(i, j int) bool {
		iSys := systemPaths[ginRoutes[i].Path]
		jSys := systemPaths[ginRoutes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
			System:  systemPaths[r.Path],
		})
	}
	return routes
}

// formatHandlerName shortens gin's handler name for display:
// "github.com/kbukum/validator-gateway/api.(*Handler).GetBlock-fm" becomes
// "Handler.GetBlock" and "endpoint.Health.func1" becomes "health".
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	if strings.Contains(name, ".func") {
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}
	if len(parts) > 1 && parts[0] == strings.ToLower(parts[0]) {
		return strings.Join(parts[1:], ".")
	}
	return name
}

// methodOrder returns a sort key for HTTP methods (GET before POST).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	default:
		return 2
	}
}
