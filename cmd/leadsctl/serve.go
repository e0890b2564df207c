package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/components/leads/httpapi"
	"github.com/goliatone/go-leads-dashboard/pkg/dashboard"
)

type serveCmd struct {
	Port         string `env:"PORT" default:"8080" help:"Port to listen on."`
	AllowOrigins string `name:"allow-origins" env:"LEADS_ALLOW_ORIGINS" default:"*" help:"CORS allowed origins."`
	Warm         bool   `help:"Fetch leads before accepting requests."`
	Router       string `enum:"fiber,gorouter" default:"fiber" help:"HTTP router to mount the routes on (${enum})."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	client, err := g.client()
	if err != nil {
		return err
	}
	store, err := g.snapshotStore()
	if err != nil {
		return err
	}
	chartService, err := g.chartService()
	if err != nil {
		return err
	}
	dash, err := dashboard.New(dashboard.Options{
		Client:    client,
		Cache:     leads.NewLeadCache(leads.WithCacheTTL(g.CacheTTL)),
		Snapshots: store,
		Charts:    chartService,
		Telemetry: g.telemetry(),
		HTTP:      httpapi.Config{AllowOrigins: cmd.AllowOrigins},
	})
	if err != nil {
		return err
	}
	if cmd.Warm {
		res, err := dash.Warm(ctx)
		if err != nil {
			log.Printf("leadsctl: warm cache: %v", err)
		} else {
			log.Printf("leadsctl: warmed cache with %d leads from %s", len(res.Leads), res.Origin)
		}
	}

	if cmd.Router == "gorouter" {
		return cmd.serveGoRouter(ctx, dash)
	}

	app := dash.App()
	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("leadsctl: shutdown: %v", err)
		}
	}()

	log.Printf("leadsctl: listening on :%s", cmd.Port)
	if err := app.Listen(":" + cmd.Port); err != nil {
		return fmt.Errorf("leadsctl: serve: %w", err)
	}
	return nil
}

func (cmd *serveCmd) serveGoRouter(ctx context.Context, dash *dashboard.Dashboard) error {
	srv, err := dash.Server()
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("leadsctl: shutdown: %v", err)
		}
	}()

	log.Printf("leadsctl: listening on :%s (go-router)", cmd.Port)
	if err := srv.Serve(":" + cmd.Port); err != nil {
		return fmt.Errorf("leadsctl: serve: %w", err)
	}
	return nil
}
