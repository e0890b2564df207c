package webhook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/pkg/snapshot"
)

// ErrLoadFailed wraps Load errors raised when the webhook failed and no
// fallback data was available.
var ErrLoadFailed = errors.New("webhook: load leads")

// Origin labels where a Load result came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginWebhook  Origin = "webhook"
	OriginFallback Origin = "fallback"
	OriginSnapshot Origin = "snapshot"
)

// Result is the outcome of Source.Load. FetchErr is set when the webhook
// failed and older data was served instead.
type Result struct {
	Leads    []leads.Lead
	Origin   Origin
	FetchErr error
}

// Degraded reports whether the result was served after a failed fetch.
func (r Result) Degraded() bool {
	return r.FetchErr != nil
}

// Source combines the webhook client, the lead cache and an optional durable
// snapshot store.
type Source struct {
	client    Client
	cache     *leads.LeadCache
	store     snapshot.Store
	telemetry leads.Telemetry
	now       func() time.Time
	fetchMu   sync.Mutex
}

// SourceOption customizes a Source.
type SourceOption func(*Source)

// WithSnapshotStore enables the durable fallback.
func WithSnapshotStore(store snapshot.Store) SourceOption {
	return func(s *Source) {
		s.store = store
	}
}

// WithSourceTelemetry records load events.
func WithSourceTelemetry(t leads.Telemetry) SourceOption {
	return func(s *Source) {
		s.telemetry = t
	}
}

// NewSource wires a source. A nil cache gets a default five minute cache.
func NewSource(client Client, cache *leads.LeadCache, opts ...SourceOption) (*Source, error) {
	if client == nil {
		return nil, fmt.Errorf("webhook: client is required")
	}
	if cache == nil {
		cache = leads.NewLeadCache()
	}
	s := &Source{
		client: client,
		cache:  cache,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.telemetry = leads.NormalizeTelemetry(s.telemetry)
	return s, nil
}

// Cache exposes the lead cache backing the source.
func (s *Source) Cache() *leads.LeadCache {
	return s.cache
}

// Load returns fresh cached leads unless force is set. Otherwise it fetches
// from the webhook and, on failure, falls back to stale cache data and then to
// the latest snapshot.
func (s *Source) Load(ctx context.Context, force bool) (Result, error) {
	if !force {
		if items, ok := s.cache.Get(); ok {
			return s.done(ctx, Result{Leads: items, Origin: OriginCache}, time.Time{}), nil
		}
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	// Another caller may have refreshed the cache while we waited.
	if !force {
		if items, ok := s.cache.Get(); ok {
			return s.done(ctx, Result{Leads: items, Origin: OriginCache}, time.Time{}), nil
		}
	}

	started := s.now()
	items, err := s.client.FetchLeads(ctx)
	if err == nil {
		s.cache.Set(items)
		s.saveSnapshot(ctx, items)
		return s.done(ctx, Result{Leads: items, Origin: OriginWebhook}, started), nil
	}

	if stale, ok := s.cache.FallbackData(); ok {
		return s.done(ctx, Result{Leads: stale, Origin: OriginFallback, FetchErr: err}, started), nil
	}
	if s.store != nil {
		snap, snapErr := s.store.Latest(ctx)
		if snapErr == nil {
			return s.done(ctx, Result{Leads: snap.Leads, Origin: OriginSnapshot, FetchErr: err}, started), nil
		}
		if !errors.Is(snapErr, snapshot.ErrNoSnapshot) {
			err = errors.Join(err, snapErr)
		}
	}
	s.telemetry.Record(ctx, "webhook.load_failed", map[string]any{
		"error": err.Error(),
	})
	return Result{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
}

func (s *Source) saveSnapshot(ctx context.Context, items []leads.Lead) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, items); err != nil {
		s.telemetry.Record(ctx, "webhook.snapshot_failed", map[string]any{
			"error": err.Error(),
		})
	}
}

func (s *Source) done(ctx context.Context, res Result, started time.Time) Result {
	payload := map[string]any{
		"origin": string(res.Origin),
		"count":  len(res.Leads),
	}
	if !started.IsZero() {
		payload["duration_ms"] = s.now().Sub(started).Milliseconds()
	}
	if res.FetchErr != nil {
		payload["error"] = res.FetchErr.Error()
	}
	s.telemetry.Record(ctx, "webhook.load", payload)
	return res
}
