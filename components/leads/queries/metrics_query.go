package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

const metricsComponent = "leads.metrics"

// MetricsInput scopes the metrics to a filtered subset.
type MetricsInput struct {
	Range   leads.DateRange
	Filters leads.Filters
}

// MetricsReport bundles every aggregate the dashboard shows.
type MetricsReport struct {
	Summary    leads.Summary          `json:"summary"`
	Statuses   []leads.StatusSlice    `json:"statuses"`
	Closers    []leads.CloserStats    `json:"closers"`
	Origins    []leads.OriginStats    `json:"origins"`
	Revenue    []leads.RevenuePoint   `json:"revenue"`
	Winners    leads.Winners          `json:"winners"`
	Volume     leads.VolumeIndicator  `json:"volume"`
	Validation leads.ValidationResult `json:"validation"`
	Source     Source                 `json:"source"`
}

// MetricsQuery aggregates the filtered leads.
type MetricsQuery struct {
	loader leadLoader
	memo   *leads.FilterMemo
}

// NewMetricsQuery builds the query. A nil memo gets a private one.
func NewMetricsQuery(loader leadLoader, memo *leads.FilterMemo) *MetricsQuery {
	if memo == nil {
		memo = leads.NewFilterMemo(nil)
	}
	return &MetricsQuery{loader: loader, memo: memo}
}

var _ gocommand.Querier[MetricsInput, MetricsReport] = (*MetricsQuery)(nil)

// Query computes the metrics report.
func (q *MetricsQuery) Query(ctx context.Context, input MetricsInput) (MetricsReport, error) {
	if q.loader == nil {
		return MetricsReport{}, errors.New("metrics query requires loader")
	}
	res, err := q.loader.Load(ctx, false)
	if err != nil {
		return MetricsReport{}, err
	}
	filtered := q.memo.Compute(res.Leads, input.Range, input.Filters, metricsComponent)
	items := filtered.FilteredLeads
	closers := leads.CloserPerformance(items)
	return MetricsReport{
		Summary:    leads.Summarize(items),
		Statuses:   leads.StatusDistribution(items),
		Closers:    closers,
		Origins:    leads.OriginBreakdown(items),
		Revenue:    leads.RevenueSeries(items),
		Winners:    leads.PickWinners(closers, len(items)),
		Volume:     leads.GetVolumeIndicator(len(items), len(res.Leads)),
		Validation: filtered.Validation,
		Source:     sourceOf(res),
	}, nil
}
