package charts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revenueKey(t *testing.T, cfg map[string]any) RenderKey {
	t.Helper()
	def, ok := NewRegistry().Definition(CodeRevenue)
	require.True(t, ok)
	return chartKey(def, cfg, sampleLeads())
}

func TestCacheStoresEntry(t *testing.T) {
	cache := NewCache(time.Minute)
	key := revenueKey(t, nil)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender(key, render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender(key, render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, CacheStats{Entries: 1, Hits: 1, Misses: 1}, cache.Stats())
}

func TestCacheExpiresAndSweeps(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	render := func() (string, error) { return "fresh", nil }

	_, err := cache.GetOrRender(revenueKey(t, nil), render)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrRender(revenueKey(t, map[string]any{"metric": "completed"}), render)
	require.NoError(t, err)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 2, stats.Misses)
}

func TestCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewCache(time.Minute)
	_, err := cache.GetOrRender(revenueKey(t, nil), func() (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)
	assert.Zero(t, cache.Stats().Entries)
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	cache := NewCache(0)
	calls := 0
	for range 3 {
		_, err := cache.GetOrRender(revenueKey(t, nil), func() (string, error) {
			calls++
			return "x", nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestCacheInvalidateDropsChartAndGrids(t *testing.T) {
	reg := NewRegistry()
	defs := reg.Definitions()
	cfgs := make([]map[string]any, len(defs))
	items := sampleLeads()
	statusDef, _ := reg.Definition(CodeStatus)

	cache := NewCache(time.Minute)
	render := func() (string, error) { return "x", nil }
	_, _ = cache.GetOrRender(revenueKey(t, nil), render)
	_, _ = cache.GetOrRender(chartKey(statusDef, nil, items), render)
	_, _ = cache.GetOrRender(gridKey(defs, cfgs, items), render)
	require.Equal(t, 3, cache.Stats().Entries)

	cache.Invalidate(CodeRevenue)
	assert.Equal(t, 1, cache.Stats().Entries, "status chart survives")
}

func TestRenderKeysTrackConfigAndLeads(t *testing.T) {
	a := revenueKey(t, map[string]any{"metric": "both", "title": "x"})
	b := revenueKey(t, map[string]any{"title": "x", "metric": "both"})
	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.String(), revenueKey(t, map[string]any{"metric": "completed"}).String())
	assert.Equal(t, "empty", configHash(nil))

	items := sampleLeads()
	first := leadsFingerprint(items)
	items[0].CompletedSale = 1
	assert.NotEqual(t, first, leadsFingerprint(items))
	assert.Equal(t, "none", leadsFingerprint(nil))
}
