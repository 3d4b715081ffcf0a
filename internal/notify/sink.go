// Package notify delivers notifications off the request path.
//
// A Dispatcher accepts notifications without blocking and fans them out to one or
// more Sinks from a fixed pool of workers. Delivery failures are logged and dropped.
package notify

import (
	"context"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// Sink delivers one notification to an external system.
type Sink interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// Envelope is the wire form of a notification.
type Envelope struct {
	RecipientID string                     `json:"recipient_id"`
	Kind        domain.NotificationKind    `json:"kind"`
	Title       string                     `json:"title"`
	Message     string                     `json:"message"`
	Payload     domain.NotificationPayload `json:"payload"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// NewEnvelope wraps n for publishing.
func NewEnvelope(n domain.Notification) Envelope {
	return Envelope{
		RecipientID: n.RecipientID,
		Kind:        n.Kind(),
		Title:       n.Title,
		Message:     n.Message,
		Payload:     n.Payload,
		CreatedAt:   n.CreatedAt,
	}
}
