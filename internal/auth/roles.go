package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

// RequireRoles ensures the principal's role belongs to the declared
// allow-set. Routes without this guard (and without Middleware.Handle) are
// public by construction; a protected route always names a non-empty set.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a caller is authenticated without
// restricting the role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
