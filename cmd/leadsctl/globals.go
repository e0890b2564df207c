package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/charts"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/pkg/snapshot"
	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

// Globals holds configuration shared by every command.
type Globals struct {
	WebhookURL    string        `name:"webhook-url" env:"LEADS_WEBHOOK_URL" help:"Webhook returning lead rows as JSON."`
	WebhookToken  string        `name:"webhook-token" env:"LEADS_WEBHOOK_TOKEN" help:"Bearer token sent to the webhook."`
	Fixture       string        `type:"existingfile" env:"LEADS_FIXTURE" help:"Read rows from a JSON file instead of the webhook."`
	CacheTTL      time.Duration `name:"cache-ttl" env:"LEADS_CACHE_TTL" default:"5m" help:"How long fetched leads stay fresh."`
	DatabaseURL   string        `name:"database-url" env:"DATABASE_URL" help:"Postgres DSN for durable snapshots (in-memory when empty)."`
	SnapshotKeep  int           `name:"snapshot-keep" default:"10" help:"Snapshots kept for fallback."`
	ChartManifest string        `name:"chart-manifest" type:"path" env:"LEADS_CHART_MANIFEST" help:"YAML manifest overriding chart definitions."`
	Verbose       bool          `short:"v" help:"Log telemetry events."`
}

func (g *Globals) telemetry() leads.Telemetry {
	if !g.Verbose {
		return nil
	}
	return leads.LogTelemetry{Logger: log.Default()}
}

func (g *Globals) client() (webhook.Client, error) {
	if g.Fixture != "" {
		return webhook.NewFileClient(g.Fixture), nil
	}
	if g.WebhookURL == "" {
		return nil, fmt.Errorf("leadsctl: --webhook-url (LEADS_WEBHOOK_URL) or --fixture is required")
	}
	return webhook.NewHTTPClient(webhook.HTTPConfig{URL: g.WebhookURL, Token: g.WebhookToken})
}

func (g *Globals) snapshotStore() (snapshot.Store, error) {
	if g.DatabaseURL == "" {
		return snapshot.NewMemoryStore(g.SnapshotKeep), nil
	}
	db, err := snapshot.OpenPostgres(g.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return snapshot.NewGormStore(db, snapshot.WithKeep(g.SnapshotKeep))
}

func (g *Globals) source() (*webhook.Source, error) {
	client, err := g.client()
	if err != nil {
		return nil, err
	}
	store, err := g.snapshotStore()
	if err != nil {
		return nil, err
	}
	cache := leads.NewLeadCache(leads.WithCacheTTL(g.CacheTTL))
	return webhook.NewSource(client, cache,
		webhook.WithSnapshotStore(store),
		webhook.WithSourceTelemetry(g.telemetry()),
	)
}

func (g *Globals) chartService() (*charts.Service, error) {
	svc := charts.NewService(charts.WithTelemetry(g.telemetry()))
	if g.ChartManifest != "" {
		if err := svc.LoadManifest(g.ChartManifest); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

func (g *Globals) load(ctx context.Context, force bool) (webhook.Result, error) {
	source, err := g.source()
	if err != nil {
		return webhook.Result{}, err
	}
	res, err := source.Load(ctx, force)
	if err != nil {
		return webhook.Result{}, err
	}
	if res.Degraded() {
		log.Printf("leadsctl: webhook unavailable, serving %s data: %v", res.Origin, res.FetchErr)
	}
	return res, nil
}
