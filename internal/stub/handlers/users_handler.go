package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/stub/repository"
	apperrors "github.com/tasker-hq/tasker-go/pkg/util"
)

// UsersHandler exposes account management under /api/auth/users/.
type UsersHandler struct {
	users repository.UserRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/auth/users/.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []repository.UserRecord{}
	}
	return c.JSON(users)
}

// Get handles GET /api/auth/users/:id/.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

type userPatchRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	RoleID   *int64  `json:"role_id"`
}

// Patch handles PATCH /api/auth/users/:id/.
func (h *UsersHandler) Patch(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req userPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
		user.Name = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.RoleID != nil {
		user.Role = &domain.Role{ID: *req.RoleID, RoleName: repository.RoleNames[*req.RoleID]}
	}

	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(user)
}

// Delete handles DELETE /api/auth/users/:id/.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id")
	}
	return id, nil
}
