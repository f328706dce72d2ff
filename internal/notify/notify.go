// Package notify sends the expiry digest email when the notification
// setting is on.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v5"

	"pantry/internal/config"
	"pantry/internal/logger"
)

type Service struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	recipient   string
	enabled     bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.NotifyEmail != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:      client,
		domain:      cfg.MailgunDomain,
		senderEmail: cfg.MailgunSenderEmail,
		senderName:  cfg.MailgunSenderName,
		recipient:   cfg.NotifyEmail,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendExpiryDigest mails one "name - container" line per expiring item.
// Callers check the notification setting and skip the call when it is off.
func (s *Service) SendExpiryDigest(expiring []string) error {
	if !s.enabled {
		return fmt.Errorf("notification service is not configured")
	}
	if len(expiring) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d item(s) in your pantry expire soon", len(expiring))
	textBody := s.digestText(expiring)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		s.recipient,
	)
	message.SetHTML(s.digestHTML(expiring))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send expiry digest: %w", err)
	}

	logger.Info("Expiry digest sent", "items", len(expiring), "message_id", resp)
	return nil
}

func (s *Service) digestText(expiring []string) string {
	var builder strings.Builder
	builder.WriteString("The following items are close to their expiry date:\n\n")
	for _, line := range expiring {
		builder.WriteString("  - " + line + "\n")
	}
	builder.WriteString("\nUse them up or move them to the grocery list.\n")
	return builder.String()
}

func (s *Service) digestHTML(expiring []string) string {
	var builder strings.Builder
	builder.WriteString("<h3>Expiring soon</h3><ul>")
	for _, line := range expiring {
		builder.WriteString("<li>" + line + "</li>")
	}
	builder.WriteString("</ul><p>Use them up or move them to the grocery list.</p>")
	return builder.String()
}
