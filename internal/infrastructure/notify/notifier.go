// Package notify defines the outbound notification capability. Delivery is
// best effort: callers never observe a result, and failures are retried by
// the outbox processor that drives dispatch.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier sends a message to an email address. Implementations must be safe
// for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// It stands in for a real mail transport in development and tests.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification
func (n *LogNotifier) Notify(_ context.Context, email, subject, body string) error {
	n.logger.Info("notification dispatched",
		zap.String("email", email),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// Ensure LogNotifier implements Notifier
var _ Notifier = (*LogNotifier)(nil)
