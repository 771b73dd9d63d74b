package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/artisanhub/marketplace-api/internal/config"
	"github.com/artisanhub/marketplace-api/internal/domain/availability"
)

// Cache is a best-effort redis layer in front of the availability engine.
// Every method is nil-safe and error-swallowing: a missing or failing redis
// only ever means a cold read, never a wrong answer.
//
// Invalidation uses a per-service version counter baked into the key, so a
// calendar save or new booking does not need to enumerate cached ranges.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) version(ctx context.Context, serviceID uint) int64 {
	v, err := c.client.Get(ctx, fmt.Sprintf("avail_ver:%d", serviceID)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *Cache) datesKey(ctx context.Context, serviceID uint, start, end string) string {
	return fmt.Sprintf("avail:%d:%d:%s:%s", serviceID, c.version(ctx, serviceID), start, end)
}

func (c *Cache) GetDates(
	ctx context.Context,
	serviceID uint,
	start, end string,
) ([]availability.AvailableDate, bool) {

	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.datesKey(ctx, serviceID, start, end)).Result()
	if err != nil {
		return nil, false
	}

	var dates []availability.AvailableDate
	if err := json.Unmarshal([]byte(raw), &dates); err != nil {
		return nil, false
	}
	return dates, true
}

func (c *Cache) SetDates(
	ctx context.Context,
	serviceID uint,
	start, end string,
	dates []availability.AvailableDate,
) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.datesKey(ctx, serviceID, start, end), raw, c.ttl)
}

// InvalidateService bumps the version counter, orphaning every cached range
// for the service. Orphans expire on their own TTL.
func (c *Cache) InvalidateService(ctx context.Context, serviceID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Incr(ctx, fmt.Sprintf("avail_ver:%d", serviceID))
}

// MarkSessionProcessed is a fast-path duplicate marker for payment
// verification. The database unique constraint stays authoritative.
func (c *Cache) MarkSessionProcessed(ctx context.Context, bookingID uint, sessionID string) {
	if c == nil || c.client == nil {
		return
	}
	key := fmt.Sprintf("paid_session:%d:%s", bookingID, sessionID)
	c.client.Set(ctx, key, 1, 24*time.Hour)
}

func (c *Cache) SessionProcessed(ctx context.Context, bookingID uint, sessionID string) bool {
	if c == nil || c.client == nil {
		return false
	}
	key := fmt.Sprintf("paid_session:%d:%s", bookingID, sessionID)
	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}
