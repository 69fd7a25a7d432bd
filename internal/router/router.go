package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/availlant/channelpulse/internal/handler"
	"github.com/availlant/channelpulse/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Channel *handler.ChannelHandler
	Upload  *handler.UploadHandler
	Summary *handler.SummaryHandler
	Stats   *handler.StatsHandler
	Export  *handler.ExportHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group, no identity needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes, all identity-scoped
	api := app.Group("/api")
	api.Use(middleware.RequireUserID())

	uploadLimiter := middleware.NewUploadRateLimiter()
	summaryLimiter := middleware.NewSummaryRateLimiter()
	deleteLimiter := middleware.NewDeleteRateLimiter()
	statsLimiter := middleware.NewStatsRateLimiter()
	exportLimiter := middleware.NewExportRateLimiter()

	// Channel routes
	api.Get("/channels", h.Channel.List)
	api.Post("/channels/upload", h.Upload.Upload, uploadLimiter.Handler())
	api.Delete("/channels", h.Channel.Delete, deleteLimiter.Handler())

	// Aggregate routes
	api.Get("/channels/summary", h.Summary.GetSummary, summaryLimiter.Handler())
	api.Get("/channels/export", h.Export.Export, exportLimiter.Handler())
	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())
}
