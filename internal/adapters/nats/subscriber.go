package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subscriber consumes continuation delivery jobs in the worker process.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	sub  *nats.Subscription
}

// NewSubscriber connects to NATS with JetStream enabled.
func NewSubscriber(url string) (*Subscriber, error) {
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
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeDeliveryJobs registers a durable handler for continuation pages.
// A handler error naks the message for redelivery, up to the delivery cap.
func (s *Subscriber) SubscribeDeliveryJobs(ctx context.Context, handler func(ctx context.Context, job DeliveryJob) error) error {
	sub, err := s.js.Subscribe(deliverySubject, func(msg *nats.Msg) {
		var job DeliveryJob
		if err := json.Unmarshal(msg.Data, &job); err != nil {
			// Malformed descriptor will never parse — drop it.
			_ = msg.Term()
			return
		}
		if err := handler(ctx, job); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("delivery-worker"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

// Conn exposes the underlying connection for readiness checks.
func (s *Subscriber) Conn() *nats.Conn {
	return s.conn
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	if s.sub != nil {
		_ = s.sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
