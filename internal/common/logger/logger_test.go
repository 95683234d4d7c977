package logger

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "tasks", "warning")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] [tasks]") || !strings.Contains(out, "shown") {
		t.Errorf("expected warning line, got %q", out)
	}
}

func TestLogger_WithFieldsSortedAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "tasks", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc123")
	log.WithFields(ctx, Fields{"user_id": "u1", "action": "login_success"}).Info("login success")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=abc123 action=login_success user_id=u1]") {
		t.Errorf("unexpected field rendering: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":    DEBUG,
		" WARN ":   WARNING,
		"error":    ERROR,
		"critical": CRITICAL,
		"":         INFO,
		"bogus":    INFO,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

type recordingCloser struct{ closed bool }

func (c *recordingCloser) Close() error {
	c.closed = true
	return nil
}

func TestLogger_FatalfClosesSinkBeforeExit(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "tasks", "info")
	sink := &recordingCloser{}
	log.closer = sink

	code := -1
	closedAtExit := false
	exit = func(c int) {
		code = c
		closedAtExit = sink.closed
	}
	t.Cleanup(func() { exit = os.Exit })

	log.Fatalf("failed to load config: %v", "boom")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !closedAtExit {
		t.Error("expected log sink to be closed before exit")
	}
	if !strings.Contains(buf.String(), "[CRITICAL] [tasks]") || !strings.Contains(buf.String(), "failed to load config: boom") {
		t.Errorf("expected critical line, got %q", buf.String())
	}
}
