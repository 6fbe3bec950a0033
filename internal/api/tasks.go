package api

import (
	"context"
	"fmt"

	"github.com/tasker-hq/tasker-go/internal/domain"
)

// TaskInput is the write shape for creating a task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectID   int64  `json:"project_id"`
	AssigneeID  int64  `json:"assignee_id,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	StatusID    int64  `json:"status_id,omitempty"`
}

// TaskPatch carries the fields of a partial task update; nil fields are
// left untouched by the server.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	StatusID    *int64  `json:"status_id,omitempty"`
}

// ListTasks fetches all tasks visible to the caller.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.Get(ctx, "/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTasksByAssignee fetches the tasks assigned to one user.
func (c *Client) ListTasksByAssignee(ctx context.Context, userID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.Get(ctx, fmt.Sprintf("/tasks?assigned_to=%d", userID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.Get(ctx, fmt.Sprintf("/tasks/%d/", id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task and returns the stored resource.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.Post(ctx, "/tasks", input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// PatchTask applies a partial update and returns the stored resource.
func (c *Client) PatchTask(ctx context.Context, id int64, patch TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.Patch(ctx, fmt.Sprintf("/tasks/%d/", id), patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/tasks/%d", id), nil)
}
