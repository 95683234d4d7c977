package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/tasklist/backend/internal/common/clock"
	"github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	"github.com/AlibekovAA/tasklist/backend/internal/common/jwtverify"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	taskrepo "github.com/AlibekovAA/tasklist/backend/internal/task/repository"
	"github.com/AlibekovAA/tasklist/backend/internal/task/service"
)

// fakeGuard authenticates the caller named in the X-User header.
func fakeGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get("X-User")
		if user == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := jwtverify.ContextWithClaims(r.Context(), jwtverify.Claims{UserID: user})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

var _ clock.Clock = (*testClock)(nil)

func newRouter() http.Handler {
	log := logger.NewWithWriter(io.Discard, "test", "error")
	svc := service.NewTaskService(
		taskrepo.NewMemoryRepository(),
		crypto.NewUUIDGenerator(),
		&testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		log,
	)
	r := chi.NewRouter()
	NewHandler(svc, log).Routes(r, fakeGuard)
	return r
}

func do(t *testing.T, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) taskResponse {
	t.Helper()
	var resp taskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []taskResponse {
	t.Helper()
	var resp []taskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestCreateAndList(t *testing.T) {
	h := newRouter()

	rec := do(t, h, http.MethodPost, "/tasks", "u1", `{"text":"Buy Milk"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeTask(t, rec)
	if created.ID == "" || created.OwnerID != "u1" || created.Text != "Buy Milk" || created.CreatedAt.IsZero() {
		t.Errorf("unexpected task: %+v", created)
	}

	do(t, h, http.MethodPost, "/tasks", "u1", `{"text":"walk dog"}`)

	rec = do(t, h, http.MethodGet, "/tasks?q=milk", "u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	list := decodeList(t, rec)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("expected filtered list with created task, got %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/tasks", "u1", "")
	list = decodeList(t, rec)
	if len(list) != 2 || list[0].Text != "walk dog" {
		t.Errorf("expected newest first, got %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/tasks?sort=asc", "u1", "")
	list = decodeList(t, rec)
	if len(list) != 2 || list[0].Text != "Buy Milk" {
		t.Errorf("expected ascending text order, got %+v", list)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	h := newRouter()
	rec := do(t, h, http.MethodGet, "/tasks", "nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Errorf("expected empty JSON array, got %s", got)
	}
}

func TestCreateValidation(t *testing.T) {
	h := newRouter()

	if rec := do(t, h, http.MethodPost, "/tasks", "u1", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing text: expected 400, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/tasks", "u1", `{"text":`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed json: expected 400, got %d", rec.Code)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	h := newRouter()

	created := decodeTask(t, do(t, h, http.MethodPost, "/tasks", "u1", `{"text":"buy milk"}`))

	rec := do(t, h, http.MethodPut, "/tasks/"+created.ID, "u2", `{"text":"stolen"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign update: expected 404, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPut, "/tasks/"+created.ID, "u1", `{"text":"buy milk v2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}
	updated := decodeTask(t, rec)
	if updated.Text != "buy milk v2" || updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("unexpected updated task: %+v", updated)
	}

	if rec := do(t, h, http.MethodDelete, "/tasks/"+created.ID, "u2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("foreign delete: expected 404, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/tasks/"+created.ID, "u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&ack); err != nil || !ack.Success {
		t.Errorf("expected success ack, got %v %+v", err, ack)
	}

	if rec := do(t, h, http.MethodDelete, "/tasks/"+created.ID, "u1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("repeated delete: expected 404, got %d", rec.Code)
	}
}

func TestGuardRejectsAnonymous(t *testing.T) {
	h := newRouter()
	if rec := do(t, h, http.MethodGet, "/tasks", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
