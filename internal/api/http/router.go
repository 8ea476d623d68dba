package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-delivery-platform/internal/api/http/handlers"
	"github.com/spec-kit/food-delivery-platform/internal/auth"
	"github.com/spec-kit/food-delivery-platform/internal/domain"
)

// AuthRouteConfig bundles dependencies for the auth service routes.
type AuthRouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterAuthRoutes wires the auth service HTTP surface. Register and
// login are the only public routes; everything else declares its allow-set
// or at minimum requires a verified token.
func RegisterAuthRoutes(app *fiber.App, cfg AuthRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/profile", auth.RequireAuthenticated(), cfg.Users.Profile)
	protected.Put("/update", auth.RequireAuthenticated(), cfg.Users.UpdateProfile)

	adminOnly := auth.RequireRoles(domain.RoleAdmin)
	protected.Get("/", adminOnly, cfg.Users.ListUsers)
	protected.Put("/:id/role", adminOnly, cfg.Users.UpdateRole)
	protected.Delete("/:id", adminOnly, cfg.Users.DeleteUser)
}

// RestaurantRouteConfig bundles dependencies for the restaurant service routes.
type RestaurantRouteConfig struct {
	Health         *handlers.HealthHandler
	Foods          *handlers.FoodsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRestaurantRoutes wires the restaurant service HTTP surface. The
// service verifies tokens itself even though the gateway sits in front of
// it: each service is its own trust boundary. Reads need only a verified
// token; mutations are reserved for restaurant owners.
func RegisterRestaurantRoutes(app *fiber.App, cfg RestaurantRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	foods := app.Group("/api/foods", cfg.AuthMiddleware.Handle)
	foods.Get("/", auth.RequireAuthenticated(), cfg.Foods.ListFoods)

	ownerOnly := auth.RequireRoles(domain.RoleRestaurantOwner)
	foods.Post("/", ownerOnly, cfg.Foods.CreateFood)
	foods.Put("/:id", ownerOnly, cfg.Foods.UpdateFood)
	foods.Delete("/:id", ownerOnly, cfg.Foods.DeleteFood)
}
