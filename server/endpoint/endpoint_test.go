package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/validator-gateway/component"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/", h)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rr.Body.String(), err)
	}
	return rr, body
}

func checker(statuses ...component.HealthStatus) HealthChecker {
	return func(context.Context) []component.Health {
		out := make([]component.Health, len(statuses))
		for i, s := range statuses {
			out[i] = component.Health{Name: string(s), Status: s}
		}
		return out
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		checker  HealthChecker
		wantCode int
		want     string
	}{
		{"no checker", nil, http.StatusOK, "healthy"},
		{"all healthy", checker(component.StatusHealthy, component.StatusHealthy), http.StatusOK, "healthy"},
		{"degraded", checker(component.StatusHealthy, component.StatusDegraded), http.StatusOK, "degraded"},
		{"unhealthy wins", checker(component.StatusDegraded, component.StatusUnhealthy), http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := serve(t, Health("gateway", tc.checker))
			if rr.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rr.Code)
			}
			if body["status"] != tc.want || body["service"] != "gateway" {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	rr, body := serve(t, Readiness("gateway", checker(component.StatusHealthy, component.StatusDegraded)))
	if rr.Code != http.StatusOK || body["status"] != "ready" {
		t.Errorf("expected ready, got %d %v", rr.Code, body)
	}

	rr, body = serve(t, Readiness("gateway", checker(component.StatusUnhealthy)))
	if rr.Code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Errorf("expected not_ready, got %d %v", rr.Code, body)
	}
}

func TestInfo(t *testing.T) {
	rr, body := serve(t, Info("gateway"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body["service"] != "gateway" || body["version"] == "" {
		t.Errorf("unexpected body %v", body)
	}
}
