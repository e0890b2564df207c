package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

// CacheStatusInput requests the lead cache state.
type CacheStatusInput struct{}

type cacheInspector interface {
	Status() leads.CacheStatus
}

// CacheStatusQuery reports the lead cache state.
type CacheStatusQuery struct {
	cache cacheInspector
}

// NewCacheStatusQuery builds the query.
func NewCacheStatusQuery(cache cacheInspector) *CacheStatusQuery {
	return &CacheStatusQuery{cache: cache}
}

var _ gocommand.Querier[CacheStatusInput, leads.CacheStatus] = (*CacheStatusQuery)(nil)

// Query returns the current cache status.
func (q *CacheStatusQuery) Query(context.Context, CacheStatusInput) (leads.CacheStatus, error) {
	if q.cache == nil {
		return leads.CacheStatus{}, errors.New("cache status query requires cache")
	}
	return q.cache.Status(), nil
}
