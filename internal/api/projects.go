package api

import (
	"context"
	"fmt"

	"github.com/tasker-hq/tasker-go/internal/domain"
)

// ProjectInput is the write shape for creating or replacing a project.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"project_start_date,omitempty"`
	EndDate     string `json:"project_end_date,omitempty"`
	StatusID    int64  `json:"project_status_id,omitempty"`
}

// ListProjects fetches all projects visible to the caller.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.Get(ctx, "/projects/", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := c.Get(ctx, fmt.Sprintf("/projects/%d/", id), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project and returns the stored resource.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	var project domain.Project
	if err := c.Post(ctx, "/projects/", input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project's editable fields.
func (c *Client) UpdateProject(ctx context.Context, id int64, input ProjectInput) (*domain.Project, error) {
	var project domain.Project
	if err := c.Put(ctx, fmt.Sprintf("/projects/%d/", id), input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/projects/%d/", id), nil)
}
