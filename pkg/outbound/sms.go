package outbound

import (
	"context"
	"fmt"

	"github.com/jordanlanch/leadpulse/pkg/logger"
)

// LogSMS is the development SMS provider. It logs instead of sending;
// swap in a real provider behind SMSSender for production.
type LogSMS struct {
	fromNumber string
	logger     logger.Logger
}

// NewLogSMS creates the logging SMS provider.
func NewLogSMS(fromNumber string, log logger.Logger) *LogSMS {
	if log == nil {
		log = logger.Default()
	}
	return &LogSMS{fromNumber: fromNumber, logger: log}
}

func (s *LogSMS) SendSMS(ctx context.Context, toPhone, body string) error {
	if toPhone == "" {
		return fmt.Errorf("recipient phone cannot be empty")
	}
	s.logger.Info("sms not sent (log-only provider)",
		"from", s.fromNumber, "to", toPhone, "length", len(body))
	return nil
}
