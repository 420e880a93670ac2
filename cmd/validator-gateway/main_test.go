package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "validator-gateway ") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestRun_Validate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--validate", "-B", "http://0.0.0.0:9000", "-C", "tcp://validator:4004", "-t", "12.5"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"http://0.0.0.0:9000", "tcp://validator:4004", "12.5s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"--nope"}, 2},
		{"bad bind", []string{"--validate", "-B", "tcp://127.0.0.1:8008"}, 1},
		{"bad connect", []string{"--validate", "-C", "localhost"}, 1},
		{"missing config file", []string{"--validate", "--config", "/nonexistent.yml"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tc.args, &stdout, &stderr); code != tc.code {
				t.Errorf("expected exit %d, got %d: %s", tc.code, code, stderr.String())
			}
		})
	}
}

func TestFlagSet_Shorthands(t *testing.T) {
	fs := newFlagSet()
	if err := fs.Parse([]string{"-vvv", "--client-max-size", "42"}); err != nil {
		t.Fatal(err)
	}
	if v, _ := fs.GetCount("verbose"); v != 3 {
		t.Errorf("expected verbose 3, got %d", v)
	}
	if n, _ := fs.GetInt64("client-max-size"); n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
}
