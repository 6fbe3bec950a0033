package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tasker-hq/tasker-go/internal/token"
	apperrors "github.com/tasker-hq/tasker-go/pkg/util"
)

// RequireAdmin ensures the caller carries the Admin role.
func RequireAdmin() fiber.Handler {
	return requireRole("admin role required", func(roles []string) bool {
		return token.IsAdmin(roles)
	})
}

// RequireManager ensures the caller is a Manager or an Admin. Admins pass
// every manager gate.
func RequireManager() fiber.Handler {
	return requireRole("manager role required", func(roles []string) bool {
		return token.IsManager(roles) || token.IsAdmin(roles)
	})
}

func requireRole(message string, allowed func([]string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !allowed(token.Roles(claims)) {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
