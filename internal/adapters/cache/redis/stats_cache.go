package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
)

const statsKey = "dashboard:stats"

// StatsCache keeps the computed dashboard aggregate in Redis between
// mutations. Domain events invalidate it; the dashboard service repopulates
// it on the next read.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.DashboardStatsCache = (*StatsCache)(nil)

// NewStatsCache connects to Redis and verifies the connection.
func NewStatsCache(ctx context.Context, address string, ttl time.Duration) (*StatsCache, error) {
	client := redis.NewClient(&redis.Options{Addr: address})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", address, err)
	}
	return &StatsCache{client: client, ttl: ttl}, nil
}

// Get returns the cached stats, or (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read stats cache: %w", err)
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return &stats, nil
}

// Set stores the stats with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats domain.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write stats cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached stats.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %w", err)
	}
	return nil
}
