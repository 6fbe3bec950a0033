package stub

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/auth"
	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/stub/repository"
)

type seedAccount struct {
	email    string
	username string
	fullName string
	password string
	roleID   int64
}

var demoAccounts = []seedAccount{
	{email: "admin@tasker.local", username: "admin", fullName: "Ada Admin", password: "admin123", roleID: 1},
	{email: "manager@tasker.local", username: "manager", fullName: "Mona Manager", password: "manager123", roleID: 2},
	{email: "member@tasker.local", username: "member", fullName: "Max Member", password: "member123", roleID: 3},
}

// SeedDemoData creates the demo accounts plus one project and one task when
// they are not already present. Safe to call on every start.
func SeedDemoData(ctx context.Context, repos Repositories, bcryptCost int, logger *zap.Logger) error {
	var member *repository.UserRecord
	for _, acct := range demoAccounts {
		existing, err := repos.Users.GetByEmail(ctx, acct.email)
		if err == nil {
			if acct.roleID == 3 {
				member = existing
			}
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("seed lookup %s: %w", acct.email, err)
		}

		hash, err := auth.HashPassword(acct.password, bcryptCost)
		if err != nil {
			return fmt.Errorf("seed hash %s: %w", acct.email, err)
		}
		user := &repository.UserRecord{
			User: domain.User{
				Username: acct.username,
				FullName: acct.fullName,
				Email:    acct.email,
				Role:     &domain.Role{ID: acct.roleID, RoleName: repository.RoleNames[acct.roleID]},
			},
			PasswordHash: hash,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", acct.email, err)
		}
		if acct.roleID == 3 {
			member = user
		}
		logger.Info("seeded demo user", zap.String("email", acct.email))
	}

	projects, err := repos.Projects.List(ctx)
	if err != nil {
		return fmt.Errorf("seed list projects: %w", err)
	}
	if len(projects) > 0 {
		return nil
	}

	project := &domain.Project{
		Name:        "Onboarding",
		Description: "Starter project created by the stub server",
		StartDate:   "2026-01-05",
		Status:      &domain.ProjectStatus{ID: 2, Name: repository.ProjectStatusNames[2]},
	}
	if err := repos.Projects.Create(ctx, project); err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	task := &domain.Task{
		Title:       "Review the project plan",
		Description: "First task created by the stub server",
		Status:      &domain.TaskStatus{ID: 1, Name: repository.TaskStatusNames[1]},
		Project:     &domain.TaskProjectRef{ID: project.ID, Name: project.Name},
	}
	if member != nil {
		task.Assignee = &domain.UserRef{ID: member.ID, Username: member.Username}
	}
	if err := repos.Tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("seed task: %w", err)
	}
	logger.Info("seeded demo project and task", zap.Int64("project_id", project.ID))
	return nil
}
