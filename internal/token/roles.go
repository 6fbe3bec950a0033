package token

import "strconv"

// Roles derives the ordered role-name list from decoded claims. A single
// `role` object wins over the legacy `roles` array; absent or malformed
// role data yields an empty list, never an error.
func Roles(claims *Claims) []string {
	if claims == nil {
		return nil
	}
	if claims.Role != nil {
		if name := claims.Role.displayName(); name != "" {
			return []string{name}
		}
		return nil
	}
	if claims.Roles != nil {
		return claims.Roles
	}
	return nil
}

// IsAdmin reports whether roles contains the Admin role. Only the two
// literal spellings the backend has ever issued are checked.
func IsAdmin(roles []string) bool {
	return containsAny(roles, "Admin", "admin")
}

// IsManager reports whether roles contains the Manager role.
func IsManager(roles []string) bool {
	return containsAny(roles, "Manager", "manager")
}

func (r *RoleClaim) displayName() string {
	if r.RoleName != "" {
		return r.RoleName
	}
	if r.Name != "" {
		return r.Name
	}
	if r.ID != nil {
		return strconv.FormatInt(*r.ID, 10)
	}
	return ""
}

func containsAny(roles []string, names ...string) bool {
	for _, role := range roles {
		for _, name := range names {
			if role == name {
				return true
			}
		}
	}
	return false
}
