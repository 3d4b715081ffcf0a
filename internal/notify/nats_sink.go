package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is prepended to the notification kind to form the subject.
const DefaultSubjectPrefix = "notifications.expense"

// Publisher is the subset of *nats.Conn used by NATSSink.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink publishes notifications as JSON on "<prefix>.<kind>".
type NATSSink struct {
	pub    Publisher
	prefix string
}

var _ Sink = (*NATSSink)(nil)

// NewNATSSink creates a sink publishing through pub. An empty prefix uses DefaultSubjectPrefix.
func NewNATSSink(pub Publisher, prefix string) *NATSSink {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSSink{pub: pub, prefix: prefix}
}

// Subject returns the subject a notification of kind is published on.
func (s *NATSSink) Subject(kind domain.NotificationKind) string {
	return s.prefix + "." + string(kind)
}

func (s *NATSSink) Deliver(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(NewEnvelope(n))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	subject := s.Subject(n.Kind())
	if err := s.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// ConnectNATS opens a connection that keeps reconnecting in the background.
func ConnectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("expense-approvals"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}
