package tokenstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())

	store.SetAccessToken("acc-1")
	store.SetRefreshToken("ref-1")
	assert.Equal(t, "acc-1", store.AccessToken())
	assert.Equal(t, "ref-1", store.RefreshToken())

	store.SetAccessToken("acc-2")
	assert.Equal(t, "acc-2", store.AccessToken())
	assert.Equal(t, "ref-1", store.RefreshToken())
}

func TestMemoryStoreClearAccessClearsBoth(t *testing.T) {
	store := NewMemoryStore()
	store.SetAccessToken("acc")
	store.SetRefreshToken("ref")

	store.ClearAccessToken()
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestMemoryStoreClearRefreshKeepsAccess(t *testing.T) {
	store := NewMemoryStore()
	store.SetAccessToken("acc")
	store.SetRefreshToken("ref")

	store.ClearRefreshToken()
	assert.Equal(t, "acc", store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestMemoryStoreNotifications(t *testing.T) {
	store := NewMemoryStore()

	var count int
	unsubscribe := store.Subscribe(func() { count++ })

	store.SetAccessToken("acc")
	assert.Equal(t, 1, count)

	store.ClearAccessToken()
	assert.Equal(t, 2, count, "clearing both slots emits one notification")

	unsubscribe()
	store.SetAccessToken("acc-2")
	assert.Equal(t, 2, count, "no notifications after unsubscribe")
}

func TestNotifierMultipleSubscribers(t *testing.T) {
	n := newNotifier()

	var a, b int
	n.subscribe(func() { a++ })
	unsubB := n.subscribe(func() { b++ })

	n.publish()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	unsubB()
	n.publish()
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)

	// Unsubscribing twice is harmless.
	unsubB()
	n.publish()
	assert.Equal(t, 3, a)
}

func TestDisabledStoreAlwaysEmpty(t *testing.T) {
	store := NewDisabledStore()

	store.SetAccessToken("acc")
	store.SetRefreshToken("ref")
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())

	require.NotNil(t, store.Subscribe(func() {}))
}
