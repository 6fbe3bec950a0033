package token

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// RoleClaim is the role object embedded in newer tokens. ID is a pointer so
// an explicit zero id can be told apart from an absent one.
type RoleClaim struct {
	ID       *int64 `json:"id,omitempty"`
	RoleName string `json:"role_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Claims is the payload carried by Tasker access tokens. Newer tokens embed
// a single `role` object; older ones shipped a plural `roles` string array,
// which is kept for compatibility.
type Claims struct {
	UserID   int64      `json:"user_id"`
	Email    string     `json:"email"`
	Username string     `json:"username,omitempty"`
	FullName string     `json:"full_name,omitempty"`
	Role     *RoleClaim `json:"role,omitempty"`
	Roles    []string   `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Expired reports whether the token's exp claim is in the past relative to
// now. Tokens without an exp claim never expire client-side.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.UnixMilli() < now.UnixMilli()
}
