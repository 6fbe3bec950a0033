package api

import (
	"context"
	"fmt"

	"github.com/tasker-hq/tasker-go/internal/domain"
)

// UserPatch carries the fields of a partial user update.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	RoleID   *int64  `json:"role_id,omitempty"`
}

// ListUsers fetches all accounts. Requires an admin token server-side.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.Get(ctx, "/auth/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one account by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := c.Get(ctx, fmt.Sprintf("/auth/users/%d/", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PatchUser applies a partial update and returns the stored resource.
func (c *Client) PatchUser(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	var user domain.User
	if err := c.Patch(ctx, fmt.Sprintf("/auth/users/%d/", id), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/auth/users/%d/", id), nil)
}
