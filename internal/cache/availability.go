package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

const availabilityTTL = 5 * time.Minute

// AvailabilityCache fronts the active-window lookup on the booking hot
// path. A nil cache is a valid no-op, so Redis stays optional; any
// Redis error degrades to a miss and the caller falls through to the
// database.
type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	return &AvailabilityCache{rdb: rdb}
}

func key(ownerID uuid.UUID, day models.DayOfWeek) string {
	return "availability:" + ownerID.String() + ":" + string(day)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	ownerID uuid.UUID,
	day models.DayOfWeek,
) ([]models.Availability, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(ownerID, day)).Bytes()
	if err != nil {
		return nil, false
	}

	var windows []models.Availability
	if err := json.Unmarshal(raw, &windows); err != nil {
		return nil, false
	}

	return windows, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	ownerID uuid.UUID,
	day models.DayOfWeek,
	windows []models.Availability,
) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(windows)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key(ownerID, day), raw, availabilityTTL)
}

func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	ownerID uuid.UUID,
	day models.DayOfWeek,
) {
	if c == nil {
		return
	}

	c.rdb.Del(ctx, key(ownerID, day))
}
