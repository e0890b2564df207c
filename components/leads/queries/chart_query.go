package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/charts"
	"github.com/goliatone/go-leads-dashboard/components/leads"
)

const chartsComponent = "leads.charts"

// ChartInput selects one chart rendered over a filtered subset.
type ChartInput struct {
	Code    string
	Config  map[string]any
	Range   leads.DateRange
	Filters leads.Filters
}

// ChartGridInput renders every chart over a filtered subset. Configs is keyed
// by chart code.
type ChartGridInput struct {
	Range   leads.DateRange
	Filters leads.Filters
	Configs map[string]map[string]any
}

type chartRenderer interface {
	Render(ctx context.Context, code string, config map[string]any, items []leads.Lead) (charts.Rendered, error)
	RenderGrid(ctx context.Context, items []leads.Lead, configs map[string]map[string]any) (string, error)
}

// ChartQuery renders a single chart.
type ChartQuery struct {
	loader leadLoader
	memo   *leads.FilterMemo
	charts chartRenderer
}

// NewChartQuery builds the query. A nil memo gets a private one.
func NewChartQuery(loader leadLoader, memo *leads.FilterMemo, renderer chartRenderer) *ChartQuery {
	if memo == nil {
		memo = leads.NewFilterMemo(nil)
	}
	return &ChartQuery{loader: loader, memo: memo, charts: renderer}
}

var _ gocommand.Querier[ChartInput, charts.Rendered] = (*ChartQuery)(nil)

// Query renders the chart over the filtered leads.
func (q *ChartQuery) Query(ctx context.Context, input ChartInput) (charts.Rendered, error) {
	items, err := q.filtered(ctx, input.Range, input.Filters)
	if err != nil {
		return charts.Rendered{}, err
	}
	return q.charts.Render(ctx, input.Code, input.Config, items)
}

// ChartGridQuery renders the charts grid page.
type ChartGridQuery struct {
	*ChartQuery
}

// NewChartGridQuery builds the query. A nil memo gets a private one.
func NewChartGridQuery(loader leadLoader, memo *leads.FilterMemo, renderer chartRenderer) *ChartGridQuery {
	return &ChartGridQuery{ChartQuery: NewChartQuery(loader, memo, renderer)}
}

var _ gocommand.Querier[ChartGridInput, string] = (*ChartGridQuery)(nil)

// Query renders all charts as one HTML page.
func (q *ChartGridQuery) Query(ctx context.Context, input ChartGridInput) (string, error) {
	items, err := q.filtered(ctx, input.Range, input.Filters)
	if err != nil {
		return "", err
	}
	return q.charts.RenderGrid(ctx, items, input.Configs)
}

func (q *ChartQuery) filtered(ctx context.Context, dateRange leads.DateRange, filters leads.Filters) ([]leads.Lead, error) {
	if q.loader == nil || q.charts == nil {
		return nil, errors.New("chart query requires loader and renderer")
	}
	res, err := q.loader.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	return q.memo.Compute(res.Leads, dateRange, filters, chartsComponent).FilteredLeads, nil
}
