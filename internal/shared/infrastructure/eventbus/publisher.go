// Package eventbus publishes report lifecycle events to a message broker.
package eventbus

import "context"

// Routing keys for report lifecycle events.
const (
	RoutingKeyTaskReport     = "report.generated.tasks"
	RoutingKeyCalendarReport = "report.generated.calendar"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// NoopPublisher discards every event. Used when no broker is configured.
type NoopPublisher struct{}

// Publish discards the payload.
func (NoopPublisher) Publish(context.Context, string, []byte) error { return nil }

// Close is a no-op.
func (NoopPublisher) Close() error { return nil }
