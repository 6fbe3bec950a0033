// Package repository holds the storage backends for the stub API. The
// in-memory implementation is the default; a Postgres implementation backed
// by pgx is selected when a DSN is configured. Both report missing rows as
// pgx.ErrNoRows so the HTTP layer maps them uniformly.
package repository

import (
	"context"

	"github.com/tasker-hq/tasker-go/internal/domain"
)

// Reference data mirroring the seed rows in the SQL migrations. The memory
// backend resolves ids against these tables.
var (
	RoleNames = map[int64]string{1: "Admin", 2: "Manager", 3: "Member"}

	ProjectStatusNames = map[int64]string{1: "planned", 2: "active", 3: "completed"}

	TaskStatusNames = map[int64]string{1: "pending", 2: "in_progress", 3: "done"}
)

// UserRecord is a stored account. The password hash never serializes.
type UserRecord struct {
	domain.User
	Telephone    string `json:"telephone,omitempty"`
	PasswordHash string `json:"-"`
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *UserRecord) error
	Update(ctx context.Context, user *UserRecord) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)
	List(ctx context.Context) ([]UserRecord, error)
}

// ProjectRepository defines persistence access for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
}

// TaskRepository defines persistence access for tasks. List filters by
// assignee when assigneeID is non-nil.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, assigneeID *int64) ([]domain.Task, error)
}
