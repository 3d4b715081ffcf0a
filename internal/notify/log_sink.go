package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/SscSPs/expense_approvals/internal/middleware"
)

// LogSink writes notifications to the structured log. It is the fallback when no
// broker is configured.
type LogSink struct{}

var _ Sink = LogSink{}

func (LogSink) Deliver(ctx context.Context, n domain.Notification) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification",
		slog.String("recipient_id", n.RecipientID),
		slog.String("kind", string(n.Kind())),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
		slog.Any("payload", n.Payload),
	)
	return nil
}
