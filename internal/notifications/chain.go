package notifications

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/unideals/unideals-backend/pkg/config"
	"github.com/unideals/unideals-backend/pkg/logger"
)

// Chain tries each backend in priority order and stops at the first success.
// Errors from skipped backends are aggregated and logged.
type Chain struct {
	senders []Sender
	logg    *logger.Logger
}

// NewChain builds a chain over the provided backends.
func NewChain(logg *logger.Logger, senders ...Sender) (*Chain, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if len(senders) == 0 {
		return nil, fmt.Errorf("at least one sender required")
	}
	return &Chain{senders: senders, logg: logg}, nil
}

// NewChainFromConfig assembles the ranked chain from whatever providers are
// configured: SMTP, then SendGrid, then Mailjet, with the log fallback last.
func NewChainFromConfig(cfg config.MailConfig, logg *logger.Logger) (*Chain, error) {
	var senders []Sender

	if smtp, err := NewSMTPSender(cfg); err == nil {
		senders = append(senders, smtp)
	}
	if sendgrid, err := NewSendgridSender(cfg); err == nil {
		senders = append(senders, sendgrid)
	}
	if mailjet, err := NewMailjetSender(cfg); err == nil {
		senders = append(senders, mailjet)
	}
	senders = append(senders, NewLogSender(logg))

	return NewChain(logg, senders...)
}

func (c *Chain) Name() string {
	return "chain"
}

// Send walks the chain. The aggregated error is returned only when every
// backend fails.
func (c *Chain) Send(ctx context.Context, msg Message) error {
	var errs error
	for _, sender := range c.senders {
		err := sender.Send(ctx, msg)
		if err == nil {
			if errs != nil {
				c.logg.Warn(
					c.logg.WithField(ctx, "delivered_via", sender.Name()),
					"mail delivered after earlier backend failures",
				)
			}
			return nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", sender.Name(), err))
	}
	c.logg.Error(ctx, "all mail backends failed", errs)
	return errs
}
