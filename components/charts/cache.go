package charts

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// RenderKey identifies rendered markup by the charts it contains, their merged
// configuration and the lead collection they were computed from.
type RenderKey struct {
	Codes  []string
	Config string
	Leads  string
}

func (k RenderKey) String() string {
	return strings.Join(k.Codes, ",") + "|" + k.Config + "|" + k.Leads
}

func (k RenderKey) covers(code string) bool {
	return slices.Contains(k.Codes, code)
}

func chartKey(def Definition, cfg map[string]any, items []leads.Lead) RenderKey {
	return RenderKey{
		Codes:  []string{def.Code},
		Config: def.Type + ":" + configHash(cfg),
		Leads:  leadsFingerprint(items),
	}
}

func gridKey(defs []Definition, cfgs []map[string]any, items []leads.Lead) RenderKey {
	codes := make([]string, len(defs))
	h := sha1.New()
	for i, def := range defs {
		codes[i] = def.Code
		h.Write([]byte(def.Code + "=" + def.Type + ":" + configHash(cfgs[i]) + ";"))
	}
	return RenderKey{
		Codes:  codes,
		Config: hex.EncodeToString(h.Sum(nil)),
		Leads:  leadsFingerprint(items),
	}
}

// RenderCache memoizes rendered chart markup.
type RenderCache interface {
	GetOrRender(key RenderKey, render func() (string, error)) (string, error)
	// Invalidate drops every entry that contains the chart code.
	Invalidate(code string)
}

// CacheStats reports render cache usage.
type CacheStats struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

// Cache is an in-memory TTL RenderCache. A non-positive TTL disables storage.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]renderedEntry
	hits    int
	misses  int
}

type renderedEntry struct {
	key     RenderKey
	html    string
	expires time.Time
}

// NewCache builds a render cache.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]renderedEntry{},
	}
}

// GetOrRender serves fresh markup for key or renders and stores it. Render
// errors are returned and never stored.
func (c *Cache) GetOrRender(key RenderKey, render func() (string, error)) (string, error) {
	id := key.String()
	c.mu.Lock()
	if entry, ok := c.entries[id]; ok && c.now().Before(entry.expires) {
		c.hits++
		c.mu.Unlock()
		return entry.html, nil
	}
	c.misses++
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}
	if c.ttl <= 0 {
		return html, nil
	}

	c.mu.Lock()
	now := c.now()
	for other, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, other)
		}
	}
	c.entries[id] = renderedEntry{key: key, html: html, expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return html, nil
}

// Invalidate drops single-chart and grid entries containing code.
func (c *Cache) Invalidate(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, entry := range c.entries {
		if entry.key.covers(code) {
			delete(c.entries, id)
		}
	}
}

// Stats reports the number of stored entries and the hit/miss counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func leadsFingerprint(items []leads.Lead) string {
	if len(items) == 0 {
		return "none"
	}
	h := sha1.New()
	enc := json.NewEncoder(h)
	for _, lead := range items {
		if err := enc.Encode(lead); err != nil {
			return "invalid"
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
