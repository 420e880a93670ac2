package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/validator-gateway/component"
	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/observability"
	"github.com/kbukum/validator-gateway/testutil"
)

func newTestServer(t *testing.T, maxBody int64) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := Config{Host: "127.0.0.1", Port: 0, MaxBodySize: maxBody}
	cfg.ApplyDefaults()
	cfg.Port = 0
	s := New(cfg, logger.Nop())
	s.ApplyMiddleware(observability.MustMetrics(observability.Meter("server-test")))
	s.RegisterDefaultEndpoints("gateway", nil)
	return s
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   uint8
		retryAfter bool
	}{
		{"gateway error", gwerrors.New(gwerrors.BlockNotFound), http.StatusNotFound, 70, false},
		{"retryable", gwerrors.New(gwerrors.BatchQueueFull), http.StatusTooManyRequests, 31, true},
		{"wrapped", fmt.Errorf("lookup: %w", gwerrors.New(gwerrors.ValidatorTimedOut)), http.StatusServiceUnavailable, 17, true},
		{"plain error", io.ErrUnexpectedEOF, http.StatusInternalServerError, 10, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			c.Request = httptest.NewRequest("GET", "/", http.NoBody)

			RespondWithError(c, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			var body gwerrors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Code != tc.wantCode || body.Title == "" || body.Message == "" {
				t.Errorf("unexpected body %+v", body)
			}
			if got := rr.Header().Get("Retry-After") != ""; got != tc.retryAfter {
				t.Errorf("Retry-After present = %v, want %v", got, tc.retryAfter)
			}
			if len(c.Errors) != 1 {
				t.Errorf("expected error attached to context, got %d", len(c.Errors))
			}
		})
	}
}

func TestRespondWithError_DetailAppended(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest("GET", "/", http.NoBody)

	RespondWithError(c, gwerrors.New(gwerrors.InvalidResourceId).WithDetail("xyz"))

	var body gwerrors.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if !strings.HasSuffix(body.Message, "xyz") {
		t.Errorf("expected detail at end of message, got %q", body.Message)
	}
}

func TestServer_MiddlewareStack(t *testing.T) {
	s := newTestServer(t, 8)
	s.GinEngine().POST("/batches", func(c *gin.Context) {
		if logger.RequestIDFromContext(c.Request.Context()) == "" {
			t.Error("request id missing from handler context")
		}
		c.Status(http.StatusAccepted)
	})
	s.GinEngine().GET("/boom", func(*gin.Context) { panic("boom") })

	t.Run("small body passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/batches", strings.NewReader("tiny")))
		if rr.Code != http.StatusAccepted {
			t.Errorf("expected 202, got %d", rr.Code)
		}
		if rr.Header().Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id on response")
		}
	})

	t.Run("large body rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/batches", strings.NewReader("far too large")))
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("expected 413, got %d", rr.Code)
		}
	})

	t.Run("panic recovered", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/boom", http.NoBody))
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rr.Code)
		}
	})
}

func TestServer_Lifecycle(t *testing.T) {
	s := newTestServer(t, 0)
	testutil.T(t).RequireStatus(s, component.StatusUnhealthy)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	testutil.T(t).RequireStatus(s, component.StatusHealthy)

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	testutil.T(t).RequireStatus(s, component.StatusUnhealthy)
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t, 0)
	s.GinEngine().GET("/blocks", func(*gin.Context) {})
	s.GinEngine().POST("/batches", func(*gin.Context) {})

	routes := s.Routes()
	if len(routes) != 5 {
		t.Fatalf("expected 5 routes, got %d: %+v", len(routes), routes)
	}
	if routes[0].Path != "/batches" || routes[1].Path != "/blocks" {
		t.Errorf("expected API routes first, got %+v", routes[:2])
	}
	for _, r := range routes[2:] {
		if !r.System {
			t.Errorf("expected system route, got %+v", r)
		}
	}
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"github.com/kbukum/validator-gateway/api.(*Handler).GetBlock-fm", "Handler.GetBlock"},
		{"github.com/kbukum/validator-gateway/server/endpoint.Health.func1", "health"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := formatHandlerName(tc.in); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestConfig_SetBind(t *testing.T) {
	tests := []struct {
		bind     string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"http://127.0.0.1:8008", "127.0.0.1", 8008, false},
		{"http://0.0.0.0:9000", "0.0.0.0", 9000, false},
		{"tcp://127.0.0.1:8008", "", 0, true},
		{"http://localhost", "", 0, true},
		{"http://localhost:port", "", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.bind, func(t *testing.T) {
			var cfg Config
			err := cfg.SetBind(tc.bind)
			if (err != nil) != tc.wantErr {
				t.Fatalf("SetBind() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && (cfg.Host != tc.wantHost || cfg.Port != tc.wantPort) {
				t.Errorf("expected %s:%d, got %s:%d", tc.wantHost, tc.wantPort, cfg.Host, cfg.Port)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Addr() != "127.0.0.1:8008" {
		t.Errorf("unexpected default addr %s", cfg.Addr())
	}
	if cfg.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("unexpected default max body %d", cfg.MaxBodySize)
	}
	if cfg.WriteTimeout <= 300 {
		t.Errorf("write timeout %ds must exceed the validator timeout", cfg.WriteTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}
