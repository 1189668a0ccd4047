package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	mail "github.com/go-mail/mail"
)

const welcomeSubject = "Welcome to StoreHub"

// SMTPNotifier sends email through an SMTP server using go-mail.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewSMTPNotifier creates an SMTP-backed notifier.
func NewSMTPNotifier(host string, port int, username, password, from string, logger *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// SendWelcome sends the post-registration welcome message.
func (n *SMTPNotifier) SendWelcome(_ context.Context, to, username string) error {
	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour StoreHub account is ready. You can now sign in and start managing your stores.\n\nThe StoreHub Team\n",
		username)
	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your StoreHub account is ready. You can now sign in and start managing your stores.</p><p>The StoreHub Team</p>",
		username)

	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", welcomeSubject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := mail.NewDialer(n.host, n.port, n.username, n.password)
	d.TLSConfig = &tls.Config{ServerName: n.host}

	if err := d.DialAndSend(m); err != nil {
		n.logger.Error("smtp send failed",
			"to", to,
			"host", n.host,
			"error", err)
		return fmt.Errorf("smtp send: %w", err)
	}

	n.logger.Debug("welcome email sent", "to", to)
	return nil
}
