package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/stub/repository"
	apperrors "github.com/tasker-hq/tasker-go/pkg/util"
)

// TasksHandler exposes task CRUD under /api/tasks/.
type TasksHandler struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	projects repository.ProjectRepository
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks repository.TaskRepository, users repository.UserRepository, projects repository.ProjectRepository) *TasksHandler {
	return &TasksHandler{tasks: tasks, users: users, projects: projects}
}

type taskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   int64  `json:"project_id"`
	AssigneeID  int64  `json:"assignee_id"`
	Deadline    string `json:"deadline"`
	StatusID    int64  `json:"status_id"`
}

type taskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *int64  `json:"assignee_id"`
	Deadline    *string `json:"deadline"`
	StatusID    *int64  `json:"status_id"`
}

// List handles GET /api/tasks/ with an optional assigned_to filter.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	var assignee *int64
	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid assigned_to")
		}
		assignee = &id
	}

	tasks, err := h.tasks.List(c.Context(), assignee)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return c.JSON(tasks)
}

// Get handles GET /api/tasks/:id/.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

// Create handles POST /api/tasks/.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req taskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Title == "" || req.ProjectID == 0 {
		return apperrors.NewValidationError("title and project_id required")
	}

	project, err := h.projects.GetByID(c.Context(), req.ProjectID)
	if err != nil {
		return err
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Project:     &domain.TaskProjectRef{ID: project.ID, Name: project.Name},
	}
	if req.StatusID != 0 {
		task.Status = &domain.TaskStatus{ID: req.StatusID, Name: repository.TaskStatusNames[req.StatusID]}
	}
	if req.AssigneeID != 0 {
		assignee, err := h.users.GetByID(c.Context(), req.AssigneeID)
		if err != nil {
			return err
		}
		task.Assignee = &domain.UserRef{ID: assignee.ID, Username: assignee.Username}
	}

	if err := h.tasks.Create(c.Context(), task); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(task)
}

// Patch handles PATCH /api/tasks/:id/.
func (h *TasksHandler) Patch(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req taskPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	task, err := h.tasks.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Deadline != nil {
		task.Deadline = *req.Deadline
	}
	if req.StatusID != nil {
		task.Status = &domain.TaskStatus{ID: *req.StatusID, Name: repository.TaskStatusNames[*req.StatusID]}
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == 0 {
			task.Assignee = nil
		} else {
			assignee, err := h.users.GetByID(c.Context(), *req.AssigneeID)
			if err != nil {
				return err
			}
			task.Assignee = &domain.UserRef{ID: assignee.ID, Username: assignee.Username}
		}
	}

	if err := h.tasks.Update(c.Context(), task); err != nil {
		return err
	}
	return c.JSON(task)
}

// Delete handles DELETE /api/tasks/:id/.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
