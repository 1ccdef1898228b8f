// Package email handles outbound mail: an SMTP transport and an HTML
// renderer for notification and digest messages.
package email

import (
	"fmt"

	"projecthub_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Transport sends a single HTML email. Implementations must be safe for
// concurrent use.
type Transport interface {
	Send(to, subject, htmlBody string) error
}

// SMTPTransport delivers mail through a gomail dialer.
type SMTPTransport struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPTransport(cfg config.EmailConfig) *SMTPTransport {
	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}
	return &SMTPTransport{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   from,
	}
}

func (t *SMTPTransport) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := t.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
