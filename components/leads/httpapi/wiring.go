package httpapi

import (
	"github.com/goliatone/go-leads-dashboard/components/charts"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/components/leads/commands"
	"github.com/goliatone/go-leads-dashboard/components/leads/queries"
	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

// NewHandlers wires the default commands and queries around a lead source.
// Each query keeps its own filter memo.
func NewHandlers(source *webhook.Source, chartService *charts.Service, telemetry leads.Telemetry) *Handlers {
	if chartService == nil {
		chartService = charts.NewService(charts.WithTelemetry(telemetry))
	}
	return &Handlers{
		Leads:       queries.NewLeadsPageQuery(source, leads.NewFilterMemo(telemetry)),
		Metrics:     queries.NewMetricsQuery(source, leads.NewFilterMemo(telemetry)),
		Chart:       queries.NewChartQuery(source, leads.NewFilterMemo(telemetry), chartService),
		ChartGrid:   queries.NewChartGridQuery(source, leads.NewFilterMemo(telemetry), chartService),
		CacheStatus: queries.NewCacheStatusQuery(source.Cache()),
		Refresh:     commands.NewRefreshLeadsCommand(source, telemetry),
		ClearCache:  commands.NewClearCacheCommand(source.Cache(), telemetry),
	}
}
