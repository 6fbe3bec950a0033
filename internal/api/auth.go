package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// The login endpoint has shipped several response layouts over time. Each
// candidate path is probed in priority order and the first string match
// wins.
var (
	accessTokenPaths = [][]string{
		{"access_token"},
		{"access"},
		{"tokens", "access"},
		{"tokens", "access_token"},
		{"token"},
		{"tokens", "token"},
	}
	refreshTokenPaths = [][]string{
		{"refresh_token"},
		{"refresh"},
		{"tokens", "refresh"},
		{"tokens", "refresh_token"},
	}
)

// LoginResult reports the token pair extracted from a login response.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// RegisterRequest is the payload for creating an account. The legacy `name`
// field mirrors full_name because older backends require it.
type RegisterRequest struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	Password  string `json:"password"`
	Role      *struct {
		ID int64 `json:"id"`
	} `json:"role,omitempty"`
}

// Login authenticates against POST /auth/login/ and persists the returned
// token pair in the store. Storing the tokens notifies every session
// subscriber, so callers only need to navigate.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp map[string]any
	if err := c.Post(ctx, "/auth/login/", map[string]string{"email": email, "password": password}, &resp); err != nil {
		return nil, err
	}

	access, ok := probeString(resp, accessTokenPaths)
	if !ok {
		return nil, &Error{Message: "login response contained no access token", Body: resp, StatusCode: http.StatusOK}
	}

	c.store.SetAccessToken(access)
	result := &LoginResult{AccessToken: access}
	if refresh, ok := probeString(resp, refreshTokenPaths); ok {
		c.store.SetRefreshToken(refresh)
		result.RefreshToken = refresh
	}
	return result, nil
}

// Logout notifies POST /auth/logout/ and clears the store. The request is
// best-effort: a failure is logged and the local session is torn down
// regardless.
func (c *Client) Logout(ctx context.Context) {
	if err := c.Post(ctx, "/auth/logout/", nil, nil); err != nil {
		c.logger.Debug("logout request failed", zap.Error(err))
	}
	c.store.ClearAccessToken()
}

// Register creates an account via POST /auth/register/.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Name == "" {
		req.Name = req.FullName
	}
	return c.Post(ctx, "/auth/register/", req, nil)
}

// ChangePassword rotates the caller's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.Post(ctx, "/auth/user/change-password/", map[string]string{
		"old_password":     oldPassword,
		"new_password":     newPassword,
		"confirm_password": newPassword,
	}, nil)
}

// probeString walks candidate key paths through nested JSON objects and
// returns the first non-empty string found.
func probeString(obj map[string]any, paths [][]string) (string, bool) {
	for _, path := range paths {
		if val, ok := stringAt(obj, path); ok {
			return val, true
		}
	}
	return "", false
}

func stringAt(obj map[string]any, path []string) (string, bool) {
	current := any(obj)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = m[key]
		if !ok {
			return "", false
		}
	}
	val, ok := current.(string)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}
