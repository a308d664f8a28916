package outbound

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jordanlanch/leadpulse/pkg/logger"
)

// SendGridEmail sends email through SendGrid. Without an API key it runs
// in console-only mode and logs instead of sending, so development setups
// work without credentials.
type SendGridEmail struct {
	fromEmail   string
	fromName    string
	apiKey      string
	useSendGrid bool
	logger      logger.Logger
}

// NewSendGridEmail creates the email sender. apiKey may be empty for
// console-only mode.
func NewSendGridEmail(fromEmail, fromName, apiKey string, log logger.Logger) *SendGridEmail {
	if log == nil {
		log = logger.Default()
	}
	useSendGrid := apiKey != ""
	if useSendGrid {
		log.Info("email sender initialized with SendGrid")
	} else {
		log.Warn("email sender in console-only mode, set SENDGRID_API_KEY for production")
	}

	return &SendGridEmail{
		fromEmail:   fromEmail,
		fromName:    fromName,
		apiKey:      apiKey,
		useSendGrid: useSendGrid,
		logger:      log,
	}
}

func (s *SendGridEmail) SendEmail(ctx context.Context, to Recipient, subject, body string) error {
	if to.Email == "" {
		return fmt.Errorf("recipient email cannot be empty")
	}

	if !s.useSendGrid {
		s.logger.Info("email not sent (console-only mode)",
			"to", to.Email, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(to.Name, to.Email)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}

	s.logger.Debug("email sent", "to", to.Email, "status", response.StatusCode)
	return nil
}
