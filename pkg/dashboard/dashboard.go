package dashboard

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-leads-dashboard/components/charts"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/components/leads/gorouter"
	"github.com/goliatone/go-leads-dashboard/components/leads/httpapi"
	"github.com/goliatone/go-leads-dashboard/pkg/snapshot"
	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

// Options configures a Dashboard. Only Client is required.
type Options struct {
	Client    webhook.Client
	Cache     *leads.LeadCache
	Snapshots snapshot.Store
	Charts    *charts.Service
	Telemetry leads.Telemetry
	HTTP      httpapi.Config
}

// Dashboard bundles the lead source, chart service and HTTP handlers.
type Dashboard struct {
	Source   *webhook.Source
	Charts   *charts.Service
	Handlers *httpapi.Handlers

	http httpapi.Config
}

// New assembles a dashboard from opts.
func New(opts Options) (*Dashboard, error) {
	source, err := webhook.NewSource(opts.Client, opts.Cache,
		webhook.WithSnapshotStore(opts.Snapshots),
		webhook.WithSourceTelemetry(opts.Telemetry),
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	chartService := opts.Charts
	if chartService == nil {
		chartService = charts.NewService(charts.WithTelemetry(opts.Telemetry))
	}
	return &Dashboard{
		Source:   source,
		Charts:   chartService,
		Handlers: httpapi.NewHandlers(source, chartService, opts.Telemetry),
		http:     opts.HTTP,
	}, nil
}

// Warm forces a fetch so the first request is served from cache.
func (d *Dashboard) Warm(ctx context.Context) (webhook.Result, error) {
	return d.Source.Load(ctx, true)
}

// App returns a fiber app serving every dashboard route.
func (d *Dashboard) App() *fiber.App {
	return httpapi.NewApp(d.Handlers, d.http)
}

// Server mounts the same routes on a go-router fiber adapter.
func (d *Dashboard) Server() (router.Server[*fiber.App], error) {
	adapter := router.NewFiberAdapter(func(app *fiber.App) *fiber.App {
		httpapi.UseMiddleware(app, d.http)
		return app
	})
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:   adapter.Router(),
		Handlers: d.Handlers,
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return adapter, nil
}
