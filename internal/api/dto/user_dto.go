package dto

import (
	"time"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
)

// RegisterRequest payload for new accounts. DateOfBirth uses YYYY-MM-DD.
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for self-service profile edits. All fields
// are optional.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Password    string `json:"password"`
}

// UpdateRoleRequest payload for admin role changes.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse is the public view of an account; the password hash never
// leaves the service.
type UserResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Role        string `json:"role"`
}

// NewUserResponse maps the domain model to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
	}
	if user.DateOfBirth != nil {
		resp.DateOfBirth = user.DateOfBirth.Format(time.DateOnly)
	}
	return resp
}
