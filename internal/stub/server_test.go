package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/config"
	"github.com/tasker-hq/tasker-go/internal/persistence"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.StubConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}
	srv := New(cfg, zap.NewNop(), &persistence.Postgres{})
	require.NoError(t, SeedDemoData(context.Background(), srv.Repositories(), cfg.BcryptCost, zap.NewNop()))
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp.StatusCode, parsed
}

func login(t *testing.T, srv *Server, email, password string) string {
	t.Helper()
	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login body: %v", body)

	tokens, ok := body["tokens"].(map[string]any)
	require.True(t, ok, "login response carries a tokens object")
	access, _ := tokens["access"].(string)
	require.NotEmpty(t, access)
	return access
}

func TestLoginSuccessAndFailure(t *testing.T) {
	srv := newTestServer(t)

	access := login(t, srv, "admin@tasker.local", "admin123")
	assert.NotEmpty(t, access)

	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@tasker.local",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", body["error"])
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestMeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	access := login(t, srv, "admin@tasker.local", "admin123")

	status, body := doJSON(t, srv, http.MethodGet, "/api/auth/me", access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "admin@tasker.local", body["email"])
	assert.Equal(t, []any{"Admin"}, body["roles"])

	status, body = doJSON(t, srv, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["authenticated"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["error"])
}

func TestProjectLifecycle(t *testing.T) {
	srv := newTestServer(t)
	access := login(t, srv, "manager@tasker.local", "manager123")

	status, body := doJSON(t, srv, http.MethodPost, "/api/projects", access, map[string]any{
		"name":               "Website relaunch",
		"description":        "Q2 initiative",
		"project_start_date": "2026-04-01",
		"project_status_id":  1,
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	assert.Equal(t, "Website relaunch", body["name"])

	id := int64(body["id"].(float64))
	require.NotZero(t, id)
	path := fmt.Sprintf("/api/projects/%d", id)

	status, body = doJSON(t, srv, http.MethodGet, path, access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Website relaunch", body["name"])

	status, _ = doJSON(t, srv, http.MethodDelete, path, access, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = doJSON(t, srv, http.MethodGet, path, access, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestProjectWritesNeedManagerRole(t *testing.T) {
	srv := newTestServer(t)
	access := login(t, srv, "member@tasker.local", "member123")

	status, body := doJSON(t, srv, http.MethodPost, "/api/projects", access, map[string]any{
		"name": "Not allowed",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "manager role required", body["error"])
}

func TestUserListIsAdminOnly(t *testing.T) {
	srv := newTestServer(t)

	member := login(t, srv, "member@tasker.local", "member123")
	status, _ := doJSON(t, srv, http.MethodGet, "/api/auth/users", member, nil)
	assert.Equal(t, http.StatusForbidden, status)

	admin := login(t, srv, "admin@tasker.local", "admin123")
	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.GreaterOrEqual(t, len(users), 3)
}

func TestTaskAssigneeFilter(t *testing.T) {
	srv := newTestServer(t)
	access := login(t, srv, "admin@tasker.local", "admin123")

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?assigned_to=999", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	assert.Empty(t, tasks, "nobody with id 999 has tasks")
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t)
	access := login(t, srv, "member@tasker.local", "member123")

	status, _ := doJSON(t, srv, http.MethodPost, "/api/auth/user/change-password", access, map[string]string{
		"old_password":     "member123",
		"new_password":     "fresh-secret",
		"confirm_password": "fresh-secret",
	})
	require.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "member@tasker.local",
		"password": "member123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	login(t, srv, "member@tasker.local", "fresh-secret")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = doJSON(t, srv, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, body = doJSON(t, srv, http.MethodGet, "/health/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "requests")
}
