package notifications

import (
	"context"
	"fmt"

	mailjet "github.com/mailjet/mailjet-apiv3-go/v4"

	"github.com/unideals/unideals-backend/pkg/config"
)

// MailjetSender delivers mail through the Mailjet API.
type MailjetSender struct {
	client   *mailjet.Client
	from     string
	fromName string
}

// NewMailjetSender builds the Mailjet backend from config.
func NewMailjetSender(cfg config.MailConfig) (*MailjetSender, error) {
	if cfg.MailjetAPIKey == "" || cfg.MailjetAPISecret == "" {
		return nil, fmt.Errorf("mailjet credentials not configured")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("mail from address not configured")
	}
	return &MailjetSender{
		client:   mailjet.NewMailjetClient(cfg.MailjetAPIKey, cfg.MailjetAPISecret),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
	}, nil
}

func (s *MailjetSender) Name() string {
	return "mailjet"
}

func (s *MailjetSender) Send(ctx context.Context, msg Message) error {
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{{
			From: &mailjet.RecipientV31{Email: s.from, Name: s.fromName},
			To: &mailjet.RecipientsV31{
				{Email: msg.To},
			},
			Subject:  msg.Subject,
			TextPart: msg.Text,
			HTMLPart: msg.HTML,
		}},
	}
	if _, err := s.client.SendMailV31(&messages, mailjet.WithContext(ctx)); err != nil {
		return fmt.Errorf("mailjet send: %w", err)
	}
	return nil
}
