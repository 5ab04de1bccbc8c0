// Package notify pushes draw events to an optional external webhook, so
// presentation or audio collaborators can react without the engine doing I/O.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/istlab/raffle-backend/internal/engine"
)

// Client posts DrawCompleted events to a configured endpoint. It does not
// fail construction when no endpoint is set; publishing just becomes a no-op.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a client for the given endpoint, which may be empty.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishDraw sends one event. Failures are returned for logging only; they
// must never affect the draw that already happened.
func (c *Client) PublishDraw(ev engine.DrawCompleted) error {
	if c.endpoint == "" {
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: failed to encode event: %w", err)
	}
	resp, err := c.http.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: webhook post failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Subscriber adapts the client to the engine's draw subscription, logging
// and swallowing failures.
func (c *Client) Subscriber() func(engine.DrawCompleted) {
	return func(ev engine.DrawCompleted) {
		if err := c.PublishDraw(ev); err != nil {
			zap.L().Warn("draw webhook delivery failed", zap.Error(err))
		}
	}
}
