package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-delivery-platform/internal/api/dto"
	"github.com/spec-kit/food-delivery-platform/internal/auth"
	"github.com/spec-kit/food-delivery-platform/internal/service"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

// UsersHandler exposes the auth service endpoints: issuance (register,
// login) plus profile and admin account management.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("All fields are required", nil)
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return apperrors.NewValidationError("Invalid date", nil)
	}

	user, token, _, err := h.auth.Register(c.Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
		Role:        req.Role,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    dto.NewUserResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    dto.NewUserResponse(user),
	})
}

// Profile handles GET /api/auth/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.auth.Profile(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateProfile handles PUT /api/auth/update.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return apperrors.NewValidationError("Invalid date", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.SubjectID, service.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// ListUsers handles GET /api/auth/ (admin).
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.Context())
	if err != nil {
		return err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

// UpdateRole handles PUT /api/auth/:id/role (admin).
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Role == "" {
		return apperrors.NewValidationError("Role is required", nil)
	}

	user, err := h.auth.UpdateRole(c.Context(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User role updated",
		"role":    string(user.Role),
	})
}

// DeleteUser handles DELETE /api/auth/:id (admin).
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.auth.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func parseDateOfBirth(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	dob, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	return &dob, nil
}
