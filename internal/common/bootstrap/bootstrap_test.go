package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/tasklist/backend/internal/common/config"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
}

func newTestApp(t *testing.T) *apiClient {
	t.Helper()
	cfg := config.AppConfig{
		Environment:    "test",
		JWTSecret:      "scenario-secret-scenario-secret!!",
		Storage:        config.StorageConfig{URL: "memory://"},
		AllowedOrigins: []string{"*"},
	}
	app, err := NewApp(context.Background(), cfg, logger.NewWithWriter(io.Discard, "test", "error"))
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = app.Close(context.Background())
	})
	return &apiClient{t: t, server: srv}
}

func (c *apiClient) do(method, path, token string, body any, out any) int {
	c.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.server.URL+path, rdr)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type task struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *apiClient) login(username, password string) string {
	c.t.Helper()
	var tok struct {
		Token string `json:"token"`
	}
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/login", "", credentials{username, password}, &tok))
	require.NotEmpty(c.t, tok.Token)
	return tok.Token
}

func TestScenario_FullTaskLifecycle(t *testing.T) {
	c := newTestApp(t)

	var ack struct {
		Success bool `json:"success"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/register", "", credentials{"alice", "secret1"}, &ack))
	assert.True(t, ack.Success)

	token := c.login("alice", "secret1")

	var created task
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/tasks", token, map[string]string{"text": "buy milk"}, &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.OwnerID)
	assert.Equal(t, "buy milk", created.Text)
	assert.NotEmpty(t, created.CreatedAt)

	var list []task
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tasks", token, nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	var updated task
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/tasks/"+created.ID, token, map[string]string{"text": "buy milk v2"}, &updated))
	assert.Equal(t, "buy milk v2", updated.Text)
	assert.Equal(t, created.ID, updated.ID)

	ack.Success = false
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/tasks/"+created.ID, token, nil, &ack))
	assert.True(t, ack.Success)

	list = nil
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tasks", token, nil, &list))
	assert.Empty(t, list)
}

func TestScenario_TasksRequireToken(t *testing.T) {
	c := newTestApp(t)

	var env struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/tasks", "", nil, &env))
	assert.Equal(t, "No token", env.Error)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/tasks", "forged.token.value", nil, &env))
	assert.Equal(t, "Invalid token", env.Error)
}

func TestScenario_UsersAreIsolated(t *testing.T) {
	c := newTestApp(t)

	for _, u := range []string{"alice", "bob"} {
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/register", "", credentials{u, "pw-" + u}, nil))
	}
	alice := c.login("alice", "pw-alice")
	bob := c.login("bob", "pw-bob")

	var created task
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/tasks", alice, map[string]string{"text": "Buy Milk"}, &created))

	var list []task
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tasks", bob, nil, &list))
	assert.Empty(t, list)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/tasks/"+created.ID, bob, map[string]string{"text": "mine"}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/tasks/"+created.ID, bob, nil, nil))

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tasks?q=milk", alice, nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Buy Milk", list[0].Text)
}

func TestHealthAndMetrics(t *testing.T) {
	c := newTestApp(t)

	var health struct {
		Status  string `json:"status"`
		Storage string `json:"storage"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "memory", health.Storage)

	resp, err := c.server.Client().Get(c.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	c := newTestApp(t)

	var env struct {
		Code string `json:"code"`
	}
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/nope", "", nil, &env))
	assert.Equal(t, "NOT_FOUND", env.Code)

	assert.Equal(t, http.StatusMethodNotAllowed, c.do(http.MethodGet, "/login", "", nil, &env))
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Code)
}
