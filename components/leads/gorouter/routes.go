package gorouter

import (
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-leads-dashboard/components/leads/httpapi"
)

// Config wires go-router with the lead handlers.
type Config[T any] struct {
	Router   router.Router[T]
	Handlers *httpapi.Handlers
	BasePath string
}

// Register mounts the health check and the lead API on a go-router router.
// Routes mirror httpapi.Register so either transport serves the same surface.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Handlers == nil {
		return errors.New("gorouter: handlers are required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/api"
	}
	h := cfg.Handlers

	cfg.Router.Get("/health", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeHealth())
	})).SetName("leads.health")

	group := cfg.Router.Group(base)

	group.Get("/leads", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeLeads(ctx.Context(), ctx))
	})).SetName("leads.list")

	group.Get("/leads/metrics", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeMetrics(ctx.Context(), ctx))
	})).SetName("leads.metrics")

	group.Get("/charts", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeChartGrid(ctx.Context(), ctx))
	})).SetName("leads.charts")

	group.Get("/charts/:code", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeChart(ctx.Context(), ctx, ctx.Param("code")))
	})).SetName("leads.chart")

	group.Get("/cache/status", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeCacheStatus(ctx.Context()))
	})).SetName("leads.cache.status")

	group.Post("/cache/refresh", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeRefresh(ctx.Context()))
	})).SetName("leads.cache.refresh")

	group.Delete("/cache", router.WrapHandler(func(ctx router.Context) error {
		return send(ctx, h.ServeClearCache(ctx.Context()))
	})).SetName("leads.cache.clear")

	return nil
}

func send(ctx router.Context, res httpapi.Response) error {
	switch {
	case res.Status == http.StatusNoContent:
		return ctx.NoContent(res.Status)
	case res.HTML != "":
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Status(res.Status).Send([]byte(res.HTML))
	default:
		return ctx.JSON(res.Status, res.Body)
	}
}
