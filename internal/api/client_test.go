package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/tokenstore"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *tokenstore.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := tokenstore.NewMemoryStore()
	return New(srv.URL, store, nil), store
}

func TestRequestAttachesBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNoContent)
	})

	store.SetAccessToken("tok-123")
	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestRequestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	assert.Empty(t, gotAuth)
}

func TestRequestDecodesResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Project{{ID: 1, Name: "Onboarding"}})
	})

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Onboarding", projects[0].Name)
}

func TestRequestEmptyBodyAndNoContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var out domain.Project
	require.NoError(t, client.Get(context.Background(), "/projects/1/", &out))
	assert.Zero(t, out.ID, "no decode happens on an empty body")
}

func TestErrorMessageFromDetailField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "not found"}`))
	})

	err := client.Get(context.Background(), "/projects/99/", nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not found (status 404)", apiErr.Error())
}

func TestErrorMessagePrefersErrorField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad input", "detail": "ignored"}`))
	})

	err := client.Get(context.Background(), "/projects/", nil)
	apiErr := asAPIError(t, err)
	assert.Equal(t, "bad input", apiErr.Message)
}

func TestErrorGenericMessageOnUnparsableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	})

	err := client.Get(context.Background(), "/projects/", nil)
	apiErr := asAPIError(t, err)
	assert.Equal(t, "unexpected error", apiErr.Message)
	assert.Equal(t, "<html>boom</html>", apiErr.Body)
}

func TestErrorGenericMessageOnNonObjectJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`["a","b"]`))
	})

	err := client.Get(context.Background(), "/projects/", nil)
	apiErr := asAPIError(t, err)
	assert.Equal(t, "unexpected error", apiErr.Message)
	assert.Equal(t, []any{"a", "b"}, apiErr.Body)
}

func TestUnauthorizedClearsStore(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "token expired"}`))
	})

	store.SetAccessToken("stale")
	store.SetRefreshToken("stale-ref")

	err := client.Get(context.Background(), "/tasks/", nil)
	apiErr := asAPIError(t, err)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestTransportErrorHasZeroStatus(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	client := New("http://127.0.0.1:0", store, nil)

	err := client.Get(context.Background(), "/projects/", nil)
	apiErr := asAPIError(t, err)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
	assert.Equal(t, apiErr.Message, apiErr.Error())
}

func TestLoginFlatTokenFields(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@tasker.local", body["email"])
		assert.Equal(t, "pw", body["password"])

		_, _ = w.Write([]byte(`{"access_token": "A1", "refresh_token": "R1"}`))
	})

	result, err := client.Login(context.Background(), "ada@tasker.local", "pw")
	require.NoError(t, err)
	assert.Equal(t, "A1", result.AccessToken)
	assert.Equal(t, "R1", result.RefreshToken)
	assert.Equal(t, "A1", store.AccessToken())
	assert.Equal(t, "R1", store.RefreshToken())
}

func TestLoginNestedTokensObject(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tokens": {"access": "A2", "refresh": "R2"}, "user": {"id": 7}}`))
	})

	result, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "A2", result.AccessToken)
	assert.Equal(t, "R2", result.RefreshToken)
	assert.Equal(t, "A2", store.AccessToken())
}

func TestLoginBareTokenField(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token": "A3"}`))
	})

	result, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "A3", result.AccessToken)
	assert.Empty(t, result.RefreshToken)
	assert.Equal(t, "A3", store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestLoginNoTokenInResponse(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user": {"id": 7}}`))
	})

	_, err := client.Login(context.Background(), "a@b.c", "pw")
	apiErr := asAPIError(t, err)
	assert.Equal(t, "login response contained no access token", apiErr.Message)
	assert.Empty(t, store.AccessToken())
}

func TestLogoutClearsStoreEvenOnFailure(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	store.SetAccessToken("acc")
	store.SetRefreshToken("ref")

	client.Logout(context.Background())
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestProbeString(t *testing.T) {
	obj := map[string]any{
		"tokens": map[string]any{"access": "nested"},
		"token":  "flat",
		"empty":  "",
		"number": float64(5),
	}

	val, ok := probeString(obj, [][]string{{"missing"}, {"tokens", "access"}})
	require.True(t, ok)
	assert.Equal(t, "nested", val)

	_, ok = probeString(obj, [][]string{{"empty"}})
	assert.False(t, ok, "empty strings do not count as found")

	_, ok = probeString(obj, [][]string{{"number"}})
	assert.False(t, ok, "non-strings do not count as found")

	_, ok = probeString(obj, [][]string{{"token", "too", "deep"}})
	assert.False(t, ok)
}

func asAPIError(t *testing.T, err error) *Error {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok, "expected *Error, got %T", err)
	return apiErr
}
