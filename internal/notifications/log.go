package notifications

import (
	"context"

	"github.com/unideals/unideals-backend/pkg/logger"
)

// LogSender is the terminal fallback: it records the message instead of
// delivering it, so signup never blocks on a mail outage.
type LogSender struct {
	logg *logger.Logger
}

// NewLogSender builds the logging fallback backend.
func NewLogSender(logg *logger.Logger) *LogSender {
	return &LogSender{logg: logg}
}

func (s *LogSender) Name() string {
	return "log"
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	s.logg.Info(ctx, "mail fallback: message logged instead of sent")
	return nil
}
