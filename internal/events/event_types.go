package events

import (
	"time"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserRoleChanged EventType = "user_role_changed"
	EventFoodCreated     EventType = "food_created"
	EventFoodDeleted     EventType = "food_deleted"
)

// Event represents a domain event emitted by services. EntityID names the
// user or dish the event is about.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// FoodCreatedPayload payload.
type FoodCreatedPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FoodDeletedPayload payload.
type FoodDeletedPayload struct {
	Name string `json:"name"`
}
