package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the verified caller for the lifetime of one request.
// It is derived from the token alone and never persisted.
type Principal struct {
	SubjectID string
	Role      domain.Role
	IssuedAt  time.Time
}

// Middleware validates bearer tokens and stores the Principal in the
// request context. No storage access happens here: each service verifies
// tokens independently with the shared secret.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principal, err := m.tokens.VerifyToken(parts[1])
	if err != nil {
		return err
	}

	SetPrincipal(c, principal)
	return c.Next()
}

// SetPrincipal stores the verified caller on the request.
func SetPrincipal(c *fiber.Ctx, principal *Principal) {
	c.Locals(principalKey, principal)
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
