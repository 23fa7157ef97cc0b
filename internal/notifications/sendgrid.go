package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/unideals/unideals-backend/pkg/config"
)

// SendgridSender delivers mail through the SendGrid API.
type SendgridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendgridSender builds the SendGrid backend from config.
func NewSendgridSender(cfg config.MailConfig) (*SendgridSender, error) {
	if cfg.SendgridAPIKey == "" {
		return nil, fmt.Errorf("sendgrid api key not configured")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("mail from address not configured")
	}
	return &SendgridSender{
		client:   sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
	}, nil
}

func (s *SendgridSender) Name() string {
	return "sendgrid"
}

func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(s.fromName, s.from)
	to := sgmail.NewEmail("", msg.To)
	email := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
