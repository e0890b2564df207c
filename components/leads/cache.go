package leads

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched lead payload stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// CacheData is the single cached entry.
type CacheData struct {
	Leads     []Lead
	Timestamp time.Time
	ExpiresIn time.Duration
}

// CacheStatus is a diagnostic snapshot of the cache.
type CacheStatus struct {
	Cached  bool  `json:"cached"`
	AgeMS   int64 `json:"age_ms"`
	Expired bool  `json:"expired"`
	Count   int   `json:"count"`
}

// LeadCache holds the most recently fetched lead payload. Expired entries are
// kept so FallbackData can serve them when a refetch fails.
type LeadCache struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	entry *CacheData
}

// LeadCacheOption customizes the cache.
type LeadCacheOption func(*LeadCache)

// WithCacheTTL overrides the freshness window.
func WithCacheTTL(ttl time.Duration) LeadCacheOption {
	return func(c *LeadCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheClock injects the time source.
func WithCacheClock(now func() time.Time) LeadCacheOption {
	return func(c *LeadCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewLeadCache builds an empty cache.
func NewLeadCache(opts ...LeadCacheOption) *LeadCache {
	c := &LeadCache{
		ttl: DefaultCacheTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set replaces the cached payload and restarts the TTL window.
func (c *LeadCache) Set(leads []Lead) {
	c.mu.Lock()
	c.entry = &CacheData{
		Leads:     leads,
		Timestamp: c.now(),
		ExpiresIn: c.ttl,
	}
	c.mu.Unlock()
}

// Get returns the cached leads only while they are fresh.
func (c *LeadCache) Get() ([]Lead, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.validLocked() {
		return nil, false
	}
	return c.entry.Leads, true
}

// FallbackData returns the cached leads regardless of freshness.
func (c *LeadCache) FallbackData() ([]Lead, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, false
	}
	return c.entry.Leads, true
}

// IsValid reports whether a fresh entry is cached.
func (c *LeadCache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validLocked()
}

// Clear drops the cached entry.
func (c *LeadCache) Clear() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// Status reports the cache state for debugging endpoints.
func (c *LeadCache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return CacheStatus{}
	}
	return CacheStatus{
		Cached:  true,
		AgeMS:   c.now().Sub(c.entry.Timestamp).Milliseconds(),
		Expired: !c.validLocked(),
		Count:   len(c.entry.Leads),
	}
}

func (c *LeadCache) validLocked() bool {
	if c.entry == nil {
		return false
	}
	return c.now().Sub(c.entry.Timestamp) < c.entry.ExpiresIn
}
