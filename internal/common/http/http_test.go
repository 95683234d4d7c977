package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
)

func newTestLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "error")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHandleError_DomainError(t *testing.T) {
	notFound := commonerrors.NewDomainError("TASK_NOT_FOUND", commonerrors.CategoryNotFound, http.StatusNotFound, "Not found")

	handler := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleError(w, r, notFound, newTestLogger())
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks/x", nil)
	req.Header.Set(TraceIDHeader, "trace-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "Not found" || env.Code != "TASK_NOT_FOUND" || env.TraceID != "trace-1" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if rec.Header().Get(TraceIDHeader) != "trace-1" {
		t.Errorf("expected trace header to be echoed")
	}
}

func TestHandleError_LogsClientIP(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "test", "error")

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	HandleError(httptest.NewRecorder(), req, errors.New("boom"), log)

	if !strings.Contains(buf.String(), "client_ip=203.0.113.7") {
		t.Errorf("expected client ip in log line, got %q", buf.String())
	}
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"real ip wins", map[string]string{"X-Real-IP": "198.51.100.1", "X-Forwarded-For": "203.0.113.7"}, "10.0.0.1:1234", "198.51.100.1"},
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:1234", "203.0.113.7"},
		{"socket address", nil, "192.0.2.5:5555", "192.0.2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tc.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHandleError_UnknownErrorIsInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()

	HandleError(rec, req, errors.New("boom"), newTestLogger())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != CodeInternalError || env.Error != "Server error" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("internal cause must not leak to the client")
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Text string `json:"text"`
	}

	t.Run("valid", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
		if err := DecodeJSON(req, &b); err != nil || b.Text != "hi" {
			t.Fatalf("unexpected result: %v %+v", err, b)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		if err := DecodeJSON(req, &b); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":`))
		err := DecodeJSON(req, &b)
		if !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected ErrInvalidJSON, got %v", err)
		}
	})
}

func TestMaxRequestSizeMiddleware(t *testing.T) {
	handler := MaxRequestSizeMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]any
		if err := DecodeJSON(r, &v); err != nil {
			HandleError(w, r, err, newTestLogger())
			return
		}
		WriteSuccess(w)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"far too long"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(newTestLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("unexpected")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestTraceIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	handler := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(seen) != 32 {
		t.Fatalf("expected generated 32-char trace id, got %q", seen)
	}
	if rec.Header().Get(TraceIDHeader) != seen {
		t.Error("response header should carry the same trace id")
	}
}
