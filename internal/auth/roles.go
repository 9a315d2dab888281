package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/domain"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// RequireRole ensures the authenticated user's role rank meets the minimum.
// Every role comparison in the routing layer funnels through Role.Rank, so
// there is exactly one place the hierarchy is defined.
func RequireRole(min domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !user.Role.AtLeast(min) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireModerator restricts a route to MOD and ADMIN.
func RequireModerator() fiber.Handler {
	return RequireRole(domain.RoleMod)
}

// RequireAdmin restricts a route to ADMIN.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
