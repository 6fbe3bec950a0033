package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/stub/repository"
	apperrors "github.com/tasker-hq/tasker-go/pkg/util"
)

// ProjectsHandler exposes project CRUD under /api/projects/.
type ProjectsHandler struct {
	projects repository.ProjectRepository
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects repository.ProjectRepository) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"project_start_date"`
	EndDate     string `json:"project_end_date"`
	StatusID    int64  `json:"project_status_id"`
}

// List handles GET /api/projects/.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.Context())
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return c.JSON(projects)
}

// Get handles GET /api/projects/:id/.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	project, err := h.projects.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

// Create handles POST /api/projects/.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	project, err := parseProject(c)
	if err != nil {
		return err
	}
	if err := h.projects.Create(c.Context(), project); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(project)
}

// Update handles PUT /api/projects/:id/.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	project, err := parseProject(c)
	if err != nil {
		return err
	}
	project.ID = id
	if err := h.projects.Update(c.Context(), project); err != nil {
		return err
	}
	return c.JSON(project)
}

// Delete handles DELETE /api/projects/:id/.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProject(c *fiber.Ctx) (*domain.Project, error) {
	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name required")
	}

	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.StatusID != 0 {
		project.Status = &domain.ProjectStatus{ID: req.StatusID, Name: repository.ProjectStatusNames[req.StatusID]}
	}
	return project, nil
}
