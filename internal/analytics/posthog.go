// Package analytics sends product usage events for the approvals API to PostHog.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is the PostHog ingestion host used when none is configured.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Tracker records a usage event for a user.
type Tracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogTracker is a Tracker backed by a posthog.Client. A zero value is a no-op tracker.
type PosthogTracker struct {
	client posthog.Client
	logger *slog.Logger
}

var _ Tracker = (*PosthogTracker)(nil)

// NewPosthogTracker returns a tracker for apiKey. An empty key yields a disabled tracker.
func NewPosthogTracker(apiKey, endpoint string, logger *slog.Logger) *PosthogTracker {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, usage events are disabled")
		return &PosthogTracker{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogTracker{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogTracker{client: client, logger: logger}
}

// Enabled reports whether events are actually sent.
func (t *PosthogTracker) Enabled() bool {
	return t != nil && t.client != nil
}

// Enqueue queues an event. Failures are logged, never returned.
func (t *PosthogTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && t.logger != nil {
		t.logger.Warn("Failed to enqueue usage event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (t *PosthogTracker) Close() error {
	if !t.Enabled() {
		return nil
	}
	return t.client.Close()
}
