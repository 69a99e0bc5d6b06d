package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/samirrijal/textmaps/internal/adapters/nats"
	"github.com/samirrijal/textmaps/internal/adapters/twilio"
	"github.com/samirrijal/textmaps/internal/adapters/valkey"
	"github.com/samirrijal/textmaps/internal/core/usecases"
	"github.com/samirrijal/textmaps/internal/pkg/config"
	"github.com/samirrijal/textmaps/internal/pkg/logging"
	"github.com/samirrijal/textmaps/internal/pkg/metrics"
)

// Delivery worker: drains continuation-page jobs off the work queue and
// sends the next page for each. Runs alongside the webhook server so page
// sends never block an inbound request.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	store, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer store.Close()

	// Publisher ensures the stream exists and lets the engine enqueue
	// follow-up jobs; the subscriber consumes them.
	jobs, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats publisher: %v", err)
	}
	defer jobs.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	messenger := twilio.New(cfg.Twilio.BaseURL, cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.Sender)
	stepQueueRepo := valkey.NewStepQueueRepo(store)
	delivery := usecases.NewDeliveryService(stepQueueRepo, messenger, jobs, cfg.Delivery.PageSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = sub.SubscribeDeliveryJobs(ctx, func(ctx context.Context, job natsadapter.DeliveryJob) error {
		if err := delivery.DeliverNextPage(ctx, job.UserID); err != nil {
			metrics.JobsProcessed.WithLabelValues("error").Inc()
			slog.Error("delivery job failed", "user", job.UserID, "error", err)
			return err
		}
		metrics.JobsProcessed.WithLabelValues("ok").Inc()
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("delivery worker started", "page_size", cfg.Delivery.PageSize)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received", "signal", sig.String())
	cancel()
	slog.Info("worker stopped")
}
