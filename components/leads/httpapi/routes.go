package httpapi

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
)

// Config tunes the fiber app.
type Config struct {
	AllowOrigins string
	LogOutput    io.Writer
	DisableLog   bool
}

// NewApp builds a fiber app with middlewares and every lead route registered.
func NewApp(h *Handlers, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "leads-dashboard",
		DisableStartupMessage: true,
	})
	UseMiddleware(app, cfg)
	Register(app, h)
	return app
}

// UseMiddleware installs recover, request logging, CORS, compression and ETag
// handling on app.
func UseMiddleware(app *fiber.App, cfg Config) {
	app.Use(fiberrecover.New())
	if !cfg.DisableLog {
		out := cfg.LogOutput
		if out == nil {
			out = os.Stdout
		}
		app.Use(logger.New(logger.Config{Output: out}))
	}
	origins := cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       300,
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(etag.New())
}

// Register mounts the routes on any fiber router.
func Register(router fiber.Router, h *Handlers) {
	router.Get("/health", h.HandleHealth)

	api := router.Group("/api")
	api.Get("/leads", h.HandleLeads)
	api.Get("/leads/metrics", h.HandleMetrics)
	api.Get("/charts", h.HandleChartGrid)
	api.Get("/charts/:code", h.HandleChart)
	api.Get("/cache/status", h.HandleCacheStatus)
	api.Post("/cache/refresh", h.HandleRefresh)
	api.Delete("/cache", h.HandleClearCache)
}
