package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/token"
)

// TokenManager issues and verifies HS256 tokens carrying the Tasker claim
// shape. Unlike the client-side codec, Parse checks the signature; the stub
// server is the authority for its own tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate signs an access token for the user.
func (tm *TokenManager) Generate(user *domain.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tm.ttl)
	claims := &token.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if user.Role != nil {
		id := user.Role.ID
		claims.Role = &token.RoleClaim{ID: &id, RoleName: user.Role.DisplayName()}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GenerateRefresh signs a longer-lived refresh token. No exchange endpoint
// consumes it yet; it exists so login responses carry the full pair.
func (tm *TokenManager) GenerateRefresh(user *domain.User, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl * 24)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Parse validates the signature and expiry and returns the claims.
func (tm *TokenManager) Parse(tokenStr string) (*token.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &token.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*token.Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
