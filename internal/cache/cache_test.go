package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanhub/marketplace-api/internal/domain/availability"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Minute), mr
}

func sampleDates() []availability.AvailableDate {
	return []availability.AvailableDate{
		{Date: "2025-03-10", DayOfWeek: "Monday", IsAvailable: true},
		{Date: "2025-03-17", DayOfWeek: "Monday", IsAvailable: true},
	}
}

func TestDatesRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.GetDates(ctx, 7, "2025-03-10", "2025-04-10")
	assert.False(t, ok)

	c.SetDates(ctx, 7, "2025-03-10", "2025-04-10", sampleDates())

	got, ok := c.GetDates(ctx, 7, "2025-03-10", "2025-04-10")
	require.True(t, ok)
	assert.Equal(t, sampleDates(), got)

	// a different range is a different key
	_, ok = c.GetDates(ctx, 7, "2025-03-10", "2025-05-10")
	assert.False(t, ok)
}

func TestInvalidateServiceOrphansCachedRanges(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.SetDates(ctx, 7, "2025-03-10", "2025-04-10", sampleDates())
	c.InvalidateService(ctx, 7)

	_, ok := c.GetDates(ctx, 7, "2025-03-10", "2025-04-10")
	assert.False(t, ok)

	// other services untouched
	c.SetDates(ctx, 8, "2025-03-10", "2025-04-10", sampleDates())
	c.InvalidateService(ctx, 7)
	_, ok = c.GetDates(ctx, 8, "2025-03-10", "2025-04-10")
	assert.True(t, ok)
}

func TestDatesExpire(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.SetDates(ctx, 7, "2025-03-10", "2025-04-10", sampleDates())
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetDates(ctx, 7, "2025-03-10", "2025-04-10")
	assert.False(t, ok)
}

func TestSessionProcessedMarker(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	assert.False(t, c.SessionProcessed(ctx, 1, "cs_1"))

	c.MarkSessionProcessed(ctx, 1, "cs_1")
	assert.True(t, c.SessionProcessed(ctx, 1, "cs_1"))
	assert.False(t, c.SessionProcessed(ctx, 1, "cs_2"))
	assert.False(t, c.SessionProcessed(ctx, 2, "cs_1"))
}

func TestNilCacheIsSafe(t *testing.T) {
	ctx := context.Background()

	var c *Cache
	_, ok := c.GetDates(ctx, 7, "a", "b")
	assert.False(t, ok)
	c.SetDates(ctx, 7, "a", "b", sampleDates())
	c.InvalidateService(ctx, 7)
	c.MarkSessionProcessed(ctx, 1, "cs_1")
	assert.False(t, c.SessionProcessed(ctx, 1, "cs_1"))

	// constructed without a redis client
	noClient := New(nil, 0)
	_, ok = noClient.GetDates(ctx, 7, "a", "b")
	assert.False(t, ok)
	noClient.SetDates(ctx, 7, "a", "b", sampleDates())
}
