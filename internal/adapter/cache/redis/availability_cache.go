package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/srgjo27/rac_reservation/internal/core/domain"
)

type AvailabilityCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *goredis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func Key(runID uuid.UUID) string {
	return fmt.Sprintf("availability:%s", runID.String())
}

// Get returns nil without error on a cache miss.
func (c *AvailabilityCache) Get(ctx context.Context, runID uuid.UUID) (*domain.Availability, error) {
	raw, err := c.client.Get(ctx, Key(runID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var a domain.Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to decode cached availability: %w", err)
	}

	return &a, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, runID uuid.UUID, availability *domain.Availability) error {
	raw, err := json.Marshal(availability)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(runID), raw, c.ttl).Err()
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, runID uuid.UUID) error {
	return c.client.Del(ctx, Key(runID)).Err()
}
