package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/food-delivery-platform/internal/cache"
	"github.com/spec-kit/food-delivery-platform/internal/domain"
	"github.com/spec-kit/food-delivery-platform/internal/events"
	"github.com/spec-kit/food-delivery-platform/internal/repository"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

// FoodService coordinates dish workflows for restaurant owners. Ownership
// is enforced with the verified subject id from the request's Principal.
type FoodService struct {
	foods      repository.FoodRepository
	listCache  *cache.FoodCache
	dispatcher events.Dispatcher
}

// FoodDependencies bundles requirements for the food service.
type FoodDependencies struct {
	FoodRepo   repository.FoodRepository
	ListCache  *cache.FoodCache
	Dispatcher events.Dispatcher
}

// NewFoodService builds the service.
func NewFoodService(deps FoodDependencies) *FoodService {
	return &FoodService{
		foods:      deps.FoodRepo,
		listCache:  deps.ListCache,
		dispatcher: deps.Dispatcher,
	}
}

// FoodInput describes dish creation/update payloads.
type FoodInput struct {
	Name        string
	Description string
	Price       float64
}

// CreateFood adds a dish owned by the caller.
func (s *FoodService) CreateFood(ctx context.Context, ownerID string, input FoodInput) (*domain.Food, error) {
	food := &domain.Food{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	}
	if err := s.foods.Create(ctx, food); err != nil {
		return nil, err
	}

	s.listCache.InvalidateOwner(ctx, ownerID)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFoodCreated,
		EntityID:  food.ID,
		ActorID:   ownerID,
		Timestamp: time.Now(),
		Payload:   events.FoodCreatedPayload{Name: food.Name, Price: food.Price},
	})

	return food, nil
}

// ListFoods returns the caller's dishes, served from cache when possible.
func (s *FoodService) ListFoods(ctx context.Context, ownerID string) ([]domain.Food, error) {
	if foods, ok := s.listCache.GetOwnerList(ctx, ownerID); ok {
		return foods, nil
	}

	foods, err := s.foods.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.listCache.SetOwnerList(ctx, ownerID, foods)
	return foods, nil
}

// UpdateFood applies changes to a dish the caller owns.
func (s *FoodService) UpdateFood(ctx context.Context, ownerID, foodID string, input FoodInput) (*domain.Food, error) {
	food, err := s.foods.GetByIDForOwner(ctx, foodID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Food", nil)
		}
		return nil, err
	}

	if input.Name != "" {
		food.Name = input.Name
	}
	if input.Description != "" {
		food.Description = input.Description
	}
	if input.Price > 0 {
		food.Price = input.Price
	}

	if err := s.foods.Update(ctx, food); err != nil {
		return nil, err
	}
	s.listCache.InvalidateOwner(ctx, ownerID)
	return food, nil
}

// DeleteFood removes a dish the caller owns.
func (s *FoodService) DeleteFood(ctx context.Context, ownerID, foodID string) error {
	food, err := s.foods.GetByIDForOwner(ctx, foodID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Food", nil)
		}
		return err
	}

	if err := s.foods.Delete(ctx, foodID, ownerID); err != nil {
		return err
	}

	s.listCache.InvalidateOwner(ctx, ownerID)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFoodDeleted,
		EntityID:  foodID,
		ActorID:   ownerID,
		Timestamp: time.Now(),
		Payload:   events.FoodDeletedPayload{Name: food.Name},
	})
	return nil
}

func (s *FoodService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
