package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasker-hq/tasker-go/internal/token"
	"github.com/tasker-hq/tasker-go/internal/tokenstore"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, claims *token.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestManager(store tokenstore.Store) *Manager {
	return NewManager(store, token.NewCodec(nil), nil, WithClock(func() time.Time { return testNow }))
}

func TestManagerStartsLoading(t *testing.T) {
	m := newTestManager(tokenstore.NewMemoryStore())

	state := m.Snapshot()
	assert.True(t, state.IsLoading)
	assert.False(t, state.IsAuthenticated)
}

func TestManagerEmptyStore(t *testing.T) {
	m := newTestManager(tokenstore.NewMemoryStore())
	m.Start()
	defer m.Stop()

	state := m.Snapshot()
	assert.False(t, state.IsLoading)
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, state.Roles)
	assert.Zero(t, state.UserID)
}

func TestManagerValidAdminToken(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	store.SetAccessToken(mintToken(t, &token.Claims{
		UserID:   7,
		Email:    "ada@tasker.local",
		Username: "ada",
		FullName: "Ada Admin",
		Role:     &token.RoleClaim{RoleName: "Admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}))

	m := newTestManager(store)
	m.Start()
	defer m.Stop()

	state := m.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, int64(7), state.UserID)
	assert.Equal(t, "ada@tasker.local", state.Email)
	assert.Equal(t, "ada", state.Username)
	assert.Equal(t, "Ada Admin", state.FullName)
	assert.Equal(t, []string{"Admin"}, state.Roles)
	assert.True(t, state.IsAdmin)
	assert.False(t, state.IsManager)
}

func TestManagerExpiredTokenClearsStore(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	store.SetAccessToken(mintToken(t, &token.Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(testNow.Add(-time.Minute)),
		},
	}))
	store.SetRefreshToken("ref")

	m := newTestManager(store)
	m.Start()
	defer m.Stop()

	state := m.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken(), "dropping the session discards the refresh token too")
}

func TestManagerUndecodableTokenClearsStore(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	store.SetAccessToken("garbage")

	m := newTestManager(store)
	m.Start()
	defer m.Stop()

	assert.False(t, m.Snapshot().IsAuthenticated)
	assert.Empty(t, store.AccessToken())
}

func TestManagerTracksStoreChanges(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m := newTestManager(store)
	m.Start()
	defer m.Stop()

	require.False(t, m.Snapshot().IsAuthenticated)

	store.SetAccessToken(mintToken(t, &token.Claims{
		UserID: 3,
		Email:  "max@tasker.local",
		Role:   &token.RoleClaim{RoleName: "Member"},
	}))
	assert.True(t, m.Snapshot().IsAuthenticated)
	assert.Equal(t, int64(3), m.Snapshot().UserID)

	store.ClearAccessToken()
	assert.False(t, m.Snapshot().IsAuthenticated)
}

func TestManagerResolveIsIdempotent(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	store.SetAccessToken(mintToken(t, &token.Claims{
		UserID: 3,
		Role:   &token.RoleClaim{RoleName: "Manager"},
	}))

	m := newTestManager(store)
	m.Start()
	defer m.Stop()

	first := m.Snapshot()
	m.Resolve()
	m.Resolve()
	assert.Equal(t, first, m.Snapshot())
}

func TestManagerSubscribers(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m := newTestManager(store)
	m.Start()
	defer m.Stop()

	var got []State
	unsubscribe := m.Subscribe(func(s State) { got = append(got, s) })

	store.SetAccessToken(mintToken(t, &token.Claims{UserID: 5, Email: "m@t.local"}))
	require.Len(t, got, 1)
	assert.True(t, got[0].IsAuthenticated)

	unsubscribe()
	store.ClearAccessToken()
	assert.Len(t, got, 1, "no callbacks after unsubscribe")
}

func TestManagerStopDetaches(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m := newTestManager(store)
	m.Start()
	m.Stop()

	store.SetAccessToken(mintToken(t, &token.Claims{UserID: 5}))
	assert.False(t, m.Snapshot().IsAuthenticated, "stopped manager no longer tracks the store")
}
