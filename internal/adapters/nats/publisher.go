package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/textmaps/internal/pkg/metrics"
)

const (
	streamName      = "DELIVERY_JOBS"
	deliverySubject = "maps.delivery.page"
)

// DeliveryJob is the work-queue descriptor for one continuation page.
type DeliveryJob struct {
	UserID string `json:"user_id"`
}

// Publisher implements ports.JobQueue using NATS JetStream. The stream uses
// work-queue retention so each continuation job is handed to exactly one
// worker.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream, and ensures the
// delivery-jobs stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"maps.delivery.>"},
		Retention: nats.WorkQueuePolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// EnqueueDelivery publishes a continuation job for the user. Fire-and-forget
// at-least-once: a duplicate job finds a drained queue and is a no-op.
func (p *Publisher) EnqueueDelivery(ctx context.Context, userID string) error {
	data, err := json.Marshal(DeliveryJob{UserID: userID})
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(deliverySubject, data); err != nil {
		return fmt.Errorf("publish delivery job: %w", err)
	}
	metrics.JobsEnqueued.Inc()
	return nil
}

// Conn exposes the underlying connection for readiness checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
