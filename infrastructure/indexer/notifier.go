// Package indexer fires asynchronous notifications at an external indexing
// endpoint after writes that change base text or annotations. Calls are
// fire-and-forget: failures are logged and never reach the request path.
package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Event names a changed manifestation
type Event struct {
	ManifestationID string `json:"manifestation_id"`
	Kind            string `json:"kind"`
}

// Notifier queues index events for one background worker. A Notifier built
// with an empty URL drops every event.
type Notifier struct {
	url    string
	client *http.Client
	events chan Event
	done   chan struct{}
	logger *zap.Logger
}

// NewNotifier creates a Notifier and starts its worker
func NewNotifier(url string, logger *zap.Logger) *Notifier {
	n := &Notifier{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		logger: logger,
	}
	go n.run()
	return n
}

// Notify enqueues one event. Never blocks: when the buffer is full or the
// notifier is disabled, the event is dropped.
func (n *Notifier) Notify(manifestationID, kind string) {
	if n.url == "" {
		return
	}
	select {
	case n.events <- Event{ManifestationID: manifestationID, Kind: kind}:
	default:
		n.logger.Warn("index event dropped, queue full",
			zap.String("manifestation_id", manifestationID))
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for event := range n.events {
		n.send(event)
	}
}

func (n *Notifier) send(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal index event", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("build index request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("index call failed",
			zap.String("manifestation_id", event.ManifestationID), zap.Error(err))
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Warn("index call rejected",
			zap.String("manifestation_id", event.ManifestationID),
			zap.Int("status", resp.StatusCode))
	}
}

// Close stops the worker after draining queued events
func (n *Notifier) Close() {
	close(n.events)
	<-n.done
}
