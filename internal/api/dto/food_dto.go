package dto

import "github.com/spec-kit/food-delivery-platform/internal/domain"

// FoodRequest payload for dish creation and updates.
type FoodRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// FoodResponse is the public view of a dish.
type FoodResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"created_at"`
}

// NewFoodResponse maps the domain model to its public view.
func NewFoodResponse(food *domain.Food) FoodResponse {
	return FoodResponse{
		ID:          food.ID,
		Name:        food.Name,
		Description: food.Description,
		Price:       food.Price,
		CreatedAt:   food.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
