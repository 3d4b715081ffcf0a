package services

import (
	"context"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
)

// IdentityProvider resolves users owned by the identity system.
type IdentityProvider interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// NotificationDispatcher hands a notification off for delivery. It must not block on
// delivery; an error only means the notification was not accepted.
type NotificationDispatcher interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// AuditSink records one entry per state-changing operation.
type AuditSink interface {
	RecordAudit(ctx context.Context, entry domain.AuditEntry) error
}
