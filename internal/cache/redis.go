package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kundali-engine/internal/domain"
)

const redisKeyPrefix = "kundali:chart:"

// Redis caches kundalis as JSON values in a shared redis instance.
type Redis struct {
	client *redis.Client
	ttl    time.Duration // zero means no expiry
}

var _ Cache = (*Redis)(nil)

// NewRedis wraps an already-connected client. ttl bounds entry
// lifetime; pass zero to keep entries until evicted.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached kundali for a chart ID.
func (r *Redis) Get(ctx context.Context, chartID string) (*domain.Kundali, bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+chartID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", chartID, err)
	}

	var k domain.Kundali
	if err := json.Unmarshal([]byte(val), &k); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", chartID, err)
	}
	return &k, true, nil
}

// Put stores a kundali under its chart ID.
func (r *Redis) Put(ctx context.Context, k *domain.Kundali) error {
	data, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", k.ChartID, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+k.ChartID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache put %s: %w", k.ChartID, err)
	}
	return nil
}
