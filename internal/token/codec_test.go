package token

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeValidToken(t *testing.T) {
	codec := NewCodec(nil)
	roleID := int64(1)
	raw := signToken(t, &Claims{
		UserID:   7,
		Email:    "ada@tasker.local",
		Username: "ada",
		Role:     &RoleClaim{ID: &roleID, RoleName: "Admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims := codec.Decode(raw)
	require.NotNil(t, claims)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ada@tasker.local", claims.Email)
	assert.Equal(t, "ada", claims.Username)
	require.NotNil(t, claims.Role)
	assert.Equal(t, "Admin", claims.Role.RoleName)
}

func TestDecodeIgnoresSignature(t *testing.T) {
	// The codec reads the payload only, so tampering with the signature
	// segment must not affect decoding.
	codec := NewCodec(nil)
	raw := signToken(t, &Claims{UserID: 3, Email: "x@y.z"})

	tampered := raw[:len(raw)-4] + "AAAA"
	claims := codec.Decode(tampered)
	require.NotNil(t, claims)
	assert.Equal(t, int64(3), claims.UserID)
}

func TestDecodeMalformedTokens(t *testing.T) {
	codec := NewCodec(nil)

	for _, raw := range []string{
		"",
		"not-a-token",
		"one.two",
		"!!!.###.$$$",
		"a.b.c.d",
		"eyJhbGciOiJIUzI1NiJ9.%%%%.sig",
	} {
		assert.Nil(t, codec.Decode(raw), "token %q should not decode", raw)
	}
}

func TestDecodeInvalidJSONPayload(t *testing.T) {
	codec := NewCodec(nil)
	// header {"alg":"HS256"} with a payload that is not JSON
	raw := "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig"
	assert.Nil(t, codec.Decode(raw))
}

func TestClaimsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}}
	assert.False(t, fresh.Expired(now))

	stale := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Millisecond)),
	}}
	assert.True(t, stale.Expired(now))

	noExp := &Claims{}
	assert.False(t, noExp.Expired(now))

	var nilClaims *Claims
	assert.False(t, nilClaims.Expired(now))
}
