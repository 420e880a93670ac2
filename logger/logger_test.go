package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json", Output: "stdout"}
	l := New(cfg, "my-service")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "my-service" {
		t.Errorf("expected service 'my-service', got %q", l.service)
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "gateway", &buf)

	l.WithComponent("dispatcher").Debug("attempt sent", Fields(
		FieldCorrelationID, "abc",
		FieldAttempt, 2,
	))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	got := lines[0]
	if got["service"] != "gateway" || got[FieldComponent] != "dispatcher" {
		t.Errorf("missing service/component: %v", got)
	}
	if got[FieldCorrelationID] != "abc" || got[FieldAttempt] != float64(2) {
		t.Errorf("missing fields: %v", got)
	}
	if got["message"] != "attempt sent" || got["level"] != "debug" {
		t.Errorf("unexpected message/level: %v", got)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "svc", &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	if n := len(decodeLines(t, &buf)); n != 2 {
		t.Errorf("expected 2 lines at warn level, got %d", n)
	}
	if l.Enabled(zerolog.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
}

func TestNew_InvalidLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "loud", Format: "json"}, "svc", &buf)
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected nothing at fallback warn level, got %q", buf.String())
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	l.WithContext(ctx).Info("hello")

	got := decodeLines(t, &buf)[0]
	if got[FieldRequestID] != "req-1" || got[FieldCorrelationID] != "corr-1" {
		t.Errorf("expected ids from context, got %v", got)
	}
	if RequestIDFromContext(ctx) != "req-1" {
		t.Error("RequestIDFromContext mismatch")
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty request id for bare context")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	l.WithFields(map[string]interface{}{FieldAddress: "tcp://localhost:4004"}).
		WithError(errors.New("connection refused")).
		Error("dial failed")

	got := decodeLines(t, &buf)[0]
	if got[FieldAddress] != "tcp://localhost:4004" || got["error"] != "connection refused" {
		t.Errorf("unexpected fields %v", got)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "gateway", &buf)
	l.Info("listening", Fields("bind", "127.0.0.1:8008"))

	out := buf.String()
	if !strings.Contains(out, "[GAT][INF]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if !strings.Contains(out, "bind:127.0.0.1:8008") {
		t.Errorf("expected field, got %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped")
	if l.Enabled(zerolog.ErrorLevel) {
		t.Error("nop logger should not be enabled")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "warn" {
		t.Errorf("expected level 'warn', got %q", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format 'json', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stderr"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want string
	}{
		{0, "warn"},
		{1, "info"},
		{2, "debug"},
		{5, "debug"},
	}
	for _, tc := range tests {
		if got := LevelForVerbosity(tc.v); got != tc.want {
			t.Errorf("LevelForVerbosity(%d) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestRetryAndMessageFields(t *testing.T) {
	r := RetryFields(2, 250*time.Millisecond, nil)
	if r[FieldAttempt] != 2 || r[FieldBackoff] != int64(250) {
		t.Errorf("unexpected retry fields %v", r)
	}
	if _, ok := r[FieldError]; ok {
		t.Error("nil error must not add an error field")
	}
	if r = RetryFields(1, 0, errors.New("refused")); r[FieldError] != "refused" {
		t.Errorf("expected error field, got %v", r)
	}

	m := MessageFields("c-1", "CLIENT_BLOCK_GET_REQUEST")
	if m[FieldCorrelationID] != "c-1" || m[FieldMessageType] != "CLIENT_BLOCK_GET_REQUEST" {
		t.Errorf("unexpected message fields %v", m)
	}
}
