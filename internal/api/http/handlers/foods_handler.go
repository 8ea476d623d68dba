package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-delivery-platform/internal/api/dto"
	"github.com/spec-kit/food-delivery-platform/internal/auth"
	"github.com/spec-kit/food-delivery-platform/internal/service"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

// FoodsHandler manages restaurant owners' dish endpoints. Every route runs
// behind the token middleware and the restaurantOwner allow-set; ownership
// beyond the role comes from the Principal's subject id.
type FoodsHandler struct {
	service *service.FoodService
}

// NewFoodsHandler constructs handler.
func NewFoodsHandler(foodService *service.FoodService) *FoodsHandler {
	return &FoodsHandler{service: foodService}
}

// CreateFood handles POST /api/foods.
func (h *FoodsHandler) CreateFood(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.FoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Price <= 0 {
		return apperrors.NewValidationError("Name & price required", nil)
	}

	food, err := h.service.CreateFood(c.Context(), principal.SubjectID, service.FoodInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewFoodResponse(food))
}

// ListFoods handles GET /api/foods.
func (h *FoodsHandler) ListFoods(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	foods, err := h.service.ListFoods(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}

	resp := make([]dto.FoodResponse, 0, len(foods))
	for i := range foods {
		resp = append(resp, dto.NewFoodResponse(&foods[i]))
	}
	return c.JSON(resp)
}

// UpdateFood handles PUT /api/foods/:id.
func (h *FoodsHandler) UpdateFood(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.FoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	food, err := h.service.UpdateFood(c.Context(), principal.SubjectID, c.Params("id"), service.FoodInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFoodResponse(food))
}

// DeleteFood handles DELETE /api/foods/:id.
func (h *FoodsHandler) DeleteFood(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.DeleteFood(c.Context(), principal.SubjectID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Food deleted successfully"})
}
