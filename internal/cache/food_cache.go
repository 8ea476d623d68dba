package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
)

const foodListTTL = 5 * time.Minute

// FoodCache keeps per-owner dish listings in Redis so repeated menu reads
// skip Postgres. Entries are invalidated on every mutation; a cache failure
// is treated as a miss, never an error.
type FoodCache struct {
	client *redis.Client
}

// NewFoodCache builds a cache around an existing Redis client. A nil client
// disables caching entirely.
func NewFoodCache(client *redis.Client) *FoodCache {
	return &FoodCache{client: client}
}

// GetOwnerList returns the cached dish list for an owner, or ok=false on a
// miss or decode failure.
func (c *FoodCache) GetOwnerList(ctx context.Context, ownerID string) ([]domain.Food, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, ownerKey(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var foods []domain.Food
	if err := json.Unmarshal(raw, &foods); err != nil {
		return nil, false
	}
	return foods, true
}

// SetOwnerList stores the dish list for an owner.
func (c *FoodCache) SetOwnerList(ctx context.Context, ownerID string, foods []domain.Food) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(foods)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, ownerKey(ownerID), raw, foodListTTL).Err()
}

// InvalidateOwner drops the cached list after a mutation.
func (c *FoodCache) InvalidateOwner(ctx context.Context, ownerID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, ownerKey(ownerID)).Err()
}

func ownerKey(ownerID string) string {
	return "foods:owner:" + ownerID
}
