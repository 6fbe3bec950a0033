package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/tasker-hq/tasker-go/internal/auth"
	"github.com/tasker-hq/tasker-go/internal/domain"
	"github.com/tasker-hq/tasker-go/internal/stub/repository"
	"github.com/tasker-hq/tasker-go/internal/token"
	apperrors "github.com/tasker-hq/tasker-go/pkg/util"
)

// AuthHandler exposes the stub's authentication endpoints.
type AuthHandler struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthHandler constructs handler.
func NewAuthHandler(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login/. The response nests the pair under
// `tokens`, one of the historical layouts the client probes for.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required")
	}

	user, err := h.users.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	now := time.Now()
	access, expiresAt, err := h.tokens.Generate(&user.User, now)
	if err != nil {
		return err
	}
	refresh, err := h.tokens.GenerateRefresh(&user.User, now)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"tokens": fiber.Map{
			"access":  access,
			"refresh": refresh,
		},
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Logout handles POST /api/auth/logout/. Tokens are stateless, so there is
// nothing to revoke; the client clears its own store.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

type registerRequest struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
	Role      *struct {
		ID int64 `json:"id"`
	} `json:"role"`
}

// Register handles POST /api/auth/register/.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.FullName == "" {
		req.FullName = req.Name
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return apperrors.NewValidationError("username, email, password required")
	}

	if _, err := h.users.GetByEmail(c.Context(), req.Email); err == nil {
		return apperrors.NewConflict("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return err
	}

	user := &repository.UserRecord{
		User: domain.User{
			Username: req.Username,
			FullName: req.FullName,
			Name:     req.FullName,
			Email:    req.Email,
		},
		Telephone:    req.Telephone,
		PasswordHash: hash,
	}
	if req.Role != nil {
		user.Role = &domain.Role{ID: req.Role.ID, RoleName: repository.RoleNames[req.Role.ID]}
	}
	if err := h.users.Create(c.Context(), user); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(user)
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword handles POST /api/auth/user/change-password/ for the
// authenticated caller.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match")
	}

	user, err := h.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, req.OldPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword, h.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /api/auth/me, the legacy identity route: it decodes the
// presented token server-side and reports the derived identity. Unlike the
// client codec this path verifies the signature.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	claims, err := h.tokens.Parse(parts[1])
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	roles := token.Roles(claims)
	if roles == nil {
		roles = []string{}
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user_id":       claims.UserID,
		"email":         claims.Email,
		"roles":         roles,
	})
}
