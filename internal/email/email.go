// Package email sends transactional email to users. Delivery is best-effort;
// callers must never fail an operation because a message could not be sent.
package email

import (
	"context"
	"log/slog"
)

// Notifier sends user-facing email notifications.
type Notifier interface {
	// SendWelcome sends the post-registration welcome message.
	SendWelcome(ctx context.Context, to, username string) error
}

// LogNotifier logs messages instead of sending them. Used when no SMTP host
// is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendWelcome logs the welcome message instead of delivering it.
func (n *LogNotifier) SendWelcome(_ context.Context, to, username string) error {
	n.logger.Info("email delivery disabled, skipping welcome message",
		"to", to,
		"username", username)
	return nil
}
