package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/token"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       7,
		Username: "ada",
		FullName: "Ada Admin",
		Email:    "ada@tasker.local",
		Role:     &domain.Role{ID: 1, RoleName: "Admin"},
	}
}

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	now := time.Now()

	signed, expiresAt, err := tm.Generate(testUser(), now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := tm.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ada@tasker.local", claims.Email)
	assert.Equal(t, "ada", claims.Username)
	require.NotNil(t, claims.Role)
	assert.Equal(t, "Admin", claims.Role.RoleName)
	assert.True(t, token.IsAdmin(token.Roles(claims)))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	signed, _, err := signer.Generate(testUser(), time.Now())
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)

	signed, _, err := tm.Generate(testUser(), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	_, err := tm.Parse("not-a-token")
	assert.Error(t, err)
}

func TestGenerateRefreshOutlivesAccess(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	now := time.Now()

	refresh, err := tm.GenerateRefresh(testUser(), now)
	require.NoError(t, err)

	claims, err := tm.Parse(refresh)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(24*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 10)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
