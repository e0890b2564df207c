package leads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestLeadCacheLifecycle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewLeadCache(WithCacheClock(clock.Now))
	a := Lead{RowID: "a"}
	b := Lead{RowID: "b"}

	_, ok := cache.Get()
	assert.False(t, ok)
	_, ok = cache.FallbackData()
	assert.False(t, ok)

	cache.Set([]Lead{a, b})
	got, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, []Lead{a, b}, got)
	assert.True(t, cache.IsValid())

	clock.Advance(DefaultCacheTTL)
	_, ok = cache.Get()
	assert.False(t, ok)
	assert.False(t, cache.IsValid())
	stale, ok := cache.FallbackData()
	require.True(t, ok)
	assert.Equal(t, []Lead{a, b}, stale)

	cache.Clear()
	_, ok = cache.Get()
	assert.False(t, ok)
	_, ok = cache.FallbackData()
	assert.False(t, ok)
}

func TestLeadCacheSetResetsWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewLeadCache(WithCacheClock(clock.Now), WithCacheTTL(time.Minute))

	cache.Set([]Lead{{RowID: "old"}})
	clock.Advance(50 * time.Second)
	cache.Set([]Lead{{RowID: "new"}})
	clock.Advance(50 * time.Second)

	got, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, "new", got[0].RowID)
}

func TestLeadCacheStatus(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewLeadCache(WithCacheClock(clock.Now))
	assert.Equal(t, CacheStatus{}, cache.Status())

	cache.Set([]Lead{{RowID: "a"}, {RowID: "b"}, {RowID: "c"}})
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, CacheStatus{Cached: true, AgeMS: 1500, Expired: false, Count: 3}, cache.Status())

	clock.Advance(DefaultCacheTTL)
	status := cache.Status()
	assert.True(t, status.Cached)
	assert.True(t, status.Expired)
}
