package valkey

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// Client wraps a Valkey (Redis-compatible) connection shared by the
// location and step-queue repositories.
type Client struct {
	client valkey.Client
}

// New connects to Valkey.
func New(addr string) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Client{client: client}, nil
}

// Ping verifies the connection, for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Client) Close() {
	c.client.Close()
}
