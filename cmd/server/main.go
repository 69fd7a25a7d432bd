package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/availlant/channelpulse/internal/config"
	"github.com/availlant/channelpulse/internal/db"
	"github.com/availlant/channelpulse/internal/handler"
	"github.com/availlant/channelpulse/internal/middleware"
	"github.com/availlant/channelpulse/internal/repository"
	"github.com/availlant/channelpulse/internal/router"
	"github.com/availlant/channelpulse/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "channelpulse")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	channelRepo := repository.NewChannelRepo(pool)

	channelSvc := service.NewChannelService(channelRepo, cache)
	ingestSvc := service.NewIngestService(channelRepo, cache)
	summarySvc := service.NewSummaryService(channelRepo, cache)

	handler.InitMetrics(pool)

	h := &router.Handlers{
		Channel: handler.NewChannelHandler(channelSvc),
		Upload:  handler.NewUploadHandler(ingestSvc),
		Summary: handler.NewSummaryHandler(summarySvc),
		Stats:   handler.NewStatsHandler(channelSvc),
		Export:  handler.NewExportHandler(summarySvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "ChannelPulse API",
		ServerHeader: "ChannelPulse",
		BodyLimit:    cfg.MaxUploadBytes,
	})

	router.Setup(app, h, cfg.CORSOrigins)

	// Background workers
	rollup := service.NewRollupWorker(channelRepo, cfg.RollupInterval)
	go rollup.Start(ctx)

	invalidate := service.NewInvalidateWorker(pool, cache)
	go invalidate.Start(ctx)

	go func() {
		log.Printf("ChannelPulse backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}
