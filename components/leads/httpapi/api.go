package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-leads-dashboard/components/charts"
	"github.com/goliatone/go-leads-dashboard/components/leads"
	"github.com/goliatone/go-leads-dashboard/components/leads/commands"
	"github.com/goliatone/go-leads-dashboard/components/leads/queries"
	"github.com/goliatone/go-leads-dashboard/pkg/webhook"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
// The Serve methods are transport neutral; the Handle methods bind them to fiber.
type Handlers struct {
	Leads       gocommand.Querier[queries.LeadsPageInput, queries.LeadsPage]
	Metrics     gocommand.Querier[queries.MetricsInput, queries.MetricsReport]
	Chart       gocommand.Querier[queries.ChartInput, charts.Rendered]
	ChartGrid   gocommand.Querier[queries.ChartGridInput, string]
	CacheStatus gocommand.Querier[queries.CacheStatusInput, leads.CacheStatus]
	Refresh     gocommand.Commander[commands.RefreshLeadsInput]
	ClearCache  gocommand.Commander[commands.ClearCacheInput]
}

// Request is the part of an incoming request the handlers read.
type Request interface {
	Query(key string, defaultValue ...string) string
	QueryValues(key string) []string
}

// Response is a handler result. HTML, when set, is sent as text/html instead of Body.
type Response struct {
	Status int
	Body   any
	HTML   string
}

// StatusFor maps a command or query error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, charts.ErrChartNotFound):
		return http.StatusNotFound
	case errors.Is(err, charts.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, webhook.ErrLoadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) ServeHealth() Response {
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "ok"}}
}

func (h *Handlers) ServeLeads(ctx context.Context, req Request) Response {
	dateRange, err := parseRange(req)
	if err != nil {
		return badRequest(err)
	}
	page, err := queryInt(req, "page", 1)
	if err != nil {
		return badRequest(err)
	}
	size, err := queryInt(req, "page_size", leads.DefaultPageSize)
	if err != nil {
		return badRequest(err)
	}
	descending, err := parseOrder(req)
	if err != nil {
		return badRequest(err)
	}
	result, err := h.Leads.Query(ctx, queries.LeadsPageInput{
		Range:      dateRange,
		Filters:    parseFilters(req),
		Page:       page,
		PageSize:   size,
		Sort:       req.Query("sort", leads.SortByDate),
		Descending: descending,
	})
	if err != nil {
		return failure(err)
	}
	return ok(result)
}

func (h *Handlers) ServeMetrics(ctx context.Context, req Request) Response {
	dateRange, err := parseRange(req)
	if err != nil {
		return badRequest(err)
	}
	report, err := h.Metrics.Query(ctx, queries.MetricsInput{
		Range:   dateRange,
		Filters: parseFilters(req),
	})
	if err != nil {
		return failure(err)
	}
	return ok(report)
}

func (h *Handlers) ServeChartGrid(ctx context.Context, req Request) Response {
	dateRange, err := parseRange(req)
	if err != nil {
		return badRequest(err)
	}
	configs, err := parseConfig[map[string]map[string]any](req)
	if err != nil {
		return badRequest(err)
	}
	html, err := h.ChartGrid.Query(ctx, queries.ChartGridInput{
		Range:   dateRange,
		Filters: parseFilters(req),
		Configs: configs,
	})
	if err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, HTML: html}
}

func (h *Handlers) ServeChart(ctx context.Context, req Request, code string) Response {
	dateRange, err := parseRange(req)
	if err != nil {
		return badRequest(err)
	}
	cfg, err := parseConfig[map[string]any](req)
	if err != nil {
		return badRequest(err)
	}
	rendered, err := h.Chart.Query(ctx, queries.ChartInput{
		Code:    code,
		Config:  cfg,
		Range:   dateRange,
		Filters: parseFilters(req),
	})
	if err != nil {
		return failure(err)
	}
	if req.Query("format") == "json" {
		return ok(rendered)
	}
	return Response{Status: http.StatusOK, HTML: rendered.HTML}
}

func (h *Handlers) ServeCacheStatus(ctx context.Context) Response {
	status, err := h.CacheStatus.Query(ctx, queries.CacheStatusInput{})
	if err != nil {
		return failure(err)
	}
	return ok(status)
}

func (h *Handlers) ServeRefresh(ctx context.Context) Response {
	if err := h.Refresh.Execute(ctx, commands.RefreshLeadsInput{Reason: "api"}); err != nil {
		return failure(err)
	}
	res := h.ServeCacheStatus(ctx)
	if res.Status == http.StatusOK {
		res.Status = http.StatusAccepted
	}
	return res
}

func (h *Handlers) ServeClearCache(ctx context.Context) Response {
	if err := h.ClearCache.Execute(ctx, commands.ClearCacheInput{}); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusNoContent}
}

func (h *Handlers) HandleHealth(c *fiber.Ctx) error {
	return send(c, h.ServeHealth())
}

func (h *Handlers) HandleLeads(c *fiber.Ctx) error {
	return send(c, h.ServeLeads(c.UserContext(), fiberRequest{c}))
}

func (h *Handlers) HandleMetrics(c *fiber.Ctx) error {
	return send(c, h.ServeMetrics(c.UserContext(), fiberRequest{c}))
}

func (h *Handlers) HandleChartGrid(c *fiber.Ctx) error {
	return send(c, h.ServeChartGrid(c.UserContext(), fiberRequest{c}))
}

func (h *Handlers) HandleChart(c *fiber.Ctx) error {
	return send(c, h.ServeChart(c.UserContext(), fiberRequest{c}, c.Params("code")))
}

func (h *Handlers) HandleCacheStatus(c *fiber.Ctx) error {
	return send(c, h.ServeCacheStatus(c.UserContext()))
}

func (h *Handlers) HandleRefresh(c *fiber.Ctx) error {
	return send(c, h.ServeRefresh(c.UserContext()))
}

func (h *Handlers) HandleClearCache(c *fiber.Ctx) error {
	return send(c, h.ServeClearCache(c.UserContext()))
}

func send(c *fiber.Ctx, res Response) error {
	switch {
	case res.Status == http.StatusNoContent:
		return c.SendStatus(res.Status)
	case res.HTML != "":
		c.Type("html", "utf-8")
		return c.Status(res.Status).SendString(res.HTML)
	default:
		return c.Status(res.Status).JSON(res.Body)
	}
}

func ok(body any) Response {
	return Response{Status: http.StatusOK, Body: body}
}

func badRequest(err error) Response {
	return Response{Status: http.StatusBadRequest, Body: map[string]string{"error": err.Error()}}
}

func failure(err error) Response {
	body := map[string]any{"error": err.Error()}
	var cfgErr *charts.ConfigError
	if errors.As(err, &cfgErr) {
		body["problems"] = cfgErr.Problems
	}
	return Response{Status: StatusFor(err), Body: body}
}
