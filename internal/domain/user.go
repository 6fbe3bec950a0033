package domain

// User is an account as served by the Tasker API under /auth/users/.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      *Role  `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UserRef is the abbreviated user shape embedded in other resources.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
