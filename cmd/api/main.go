package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/textmaps/internal/adapters/google"
	"github.com/samirrijal/textmaps/internal/adapters/http"
	natsadapter "github.com/samirrijal/textmaps/internal/adapters/nats"
	"github.com/samirrijal/textmaps/internal/adapters/twilio"
	"github.com/samirrijal/textmaps/internal/adapters/valkey"
	"github.com/samirrijal/textmaps/internal/core/usecases"
	"github.com/samirrijal/textmaps/internal/pkg/config"
	"github.com/samirrijal/textmaps/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	// Store
	store, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer store.Close()

	// Work queue
	jobs, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer jobs.Close()

	// Outbound messaging and map imagery
	messenger := twilio.New(cfg.Twilio.BaseURL, cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.Sender)
	geocoder := google.NewGeocoder("", cfg.Google.APIKey)
	directions := google.NewDirections("", cfg.Google.APIKey)
	images := google.NewRenderer(cfg.Google.APIKey)

	// Repos
	locationRepo := valkey.NewLocationRepo(store)
	stepQueueRepo := valkey.NewStepQueueRepo(store)

	// Use cases
	deliverySvc := usecases.NewDeliveryService(stepQueueRepo, messenger, jobs, cfg.Delivery.PageSize)
	locationSvc := usecases.NewLocationService(locationRepo, geocoder)
	directionsSvc := usecases.NewDirectionsService(locationRepo, directions, stepQueueRepo, images, deliverySvc)

	deps := &http.Dependencies{
		Locations:  locationSvc,
		Directions: directionsSvc,
		Delivery:   deliverySvc,
		Images:     images,
		Store:      store,
		Jobs:       jobs,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024, // carrier webhook payloads are tiny
		AppName:      "TextMaps Webhook",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("webhook server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
