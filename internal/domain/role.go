package domain

import "strconv"

// Well-known role names used for coarse permission gating.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
)

// Role is the permission tier attached to a user. The backend has shipped
// both `role_name` and `name` for the display name over time, so both are
// retained.
type Role struct {
	ID       int64  `json:"id"`
	RoleName string `json:"role_name,omitempty"`
	Name     string `json:"name,omitempty"`
}

// DisplayName resolves the role's name, preferring role_name, then name,
// then the numeric id. Empty when nothing usable is present.
func (r *Role) DisplayName() string {
	if r == nil {
		return ""
	}
	if r.RoleName != "" {
		return r.RoleName
	}
	if r.Name != "" {
		return r.Name
	}
	if r.ID != 0 {
		return strconv.FormatInt(r.ID, 10)
	}
	return ""
}
