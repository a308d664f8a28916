package outbound

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanlanch/leadpulse/pkg/conversation"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/metrics"
	"github.com/jordanlanch/leadpulse/pkg/phone"
	"github.com/jordanlanch/leadpulse/pkg/sequence"
)

// Dispatcher routes follow-up steps to the channel sender and records the
// sent message in the lead's conversation history.
type Dispatcher struct {
	email    EmailSender
	whatsapp WhatsAppSender
	sms      SMSSender
	store    conversation.Store
	region   string
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher creates a dispatcher. Any sender may be nil; dispatching to
// a channel without a sender fails with a validation error. metrics may be
// nil.
func NewDispatcher(email EmailSender, whatsapp WhatsAppSender, sms SMSSender,
	store conversation.Store, region string, log logger.Logger, m *metrics.Metrics) *Dispatcher {
	if log == nil {
		log = logger.Default()
	}
	return &Dispatcher{
		email:    email,
		whatsapp: whatsapp,
		sms:      sms,
		store:    store,
		region:   region,
		logger:   log,
		metrics:  m,
	}
}

// DispatchStep delivers one step to the lead. Delivery errors are returned
// to the caller; there are no retries here.
func (d *Dispatcher) DispatchStep(ctx context.Context, lead Recipient, step sequence.FollowUpStep) error {
	err := d.send(ctx, lead, step)

	if d.metrics != nil {
		d.metrics.RecordStepDispatched(string(step.Channel), err == nil)
	}
	if err != nil {
		d.logger.Warn("step dispatch failed",
			"lead_id", lead.LeadID, "step", step.StepNumber, "channel", step.Channel, "error", err)
		return err
	}

	d.logger.Info("step dispatched",
		"lead_id", lead.LeadID, "step", step.StepNumber, "channel", step.Channel)

	if d.store != nil {
		msg := domain.Message{
			Direction: domain.DirectionOutbound,
			Channel:   step.Channel,
			Content:   step.Body,
			At:        time.Now(),
		}
		if err := d.store.Append(ctx, lead.LeadID, msg); err != nil {
			// The message went out; a history write failure shouldn't fail
			// the dispatch.
			d.logger.Warn("failed to record dispatched step", "lead_id", lead.LeadID, "error", err)
		}
	}

	return nil
}

func (d *Dispatcher) send(ctx context.Context, lead Recipient, step sequence.FollowUpStep) error {
	switch step.Channel {
	case domain.ChannelEmail:
		if d.email == nil {
			return domain.NewValidationError("no email sender configured")
		}
		if lead.Email == "" {
			return domain.NewValidationError("lead has no email address")
		}
		if step.Subject == "" {
			return domain.NewValidationError("email step requires a subject")
		}
		return d.email.SendEmail(ctx, lead, step.Subject, step.Body)

	case domain.ChannelWhatsApp:
		if d.whatsapp == nil {
			return domain.NewValidationError("no whatsapp sender configured")
		}
		normalized, err := d.mobileNumber(lead.Phone)
		if err != nil {
			return err
		}
		return d.whatsapp.SendWhatsApp(ctx, normalized, step.Body)

	case domain.ChannelSMS:
		if d.sms == nil {
			return domain.NewValidationError("no sms sender configured")
		}
		normalized, err := d.mobileNumber(lead.Phone)
		if err != nil {
			return err
		}
		return d.sms.SendSMS(ctx, normalized, step.Body)

	default:
		return domain.NewValidationError(fmt.Sprintf("unsupported channel %q", step.Channel))
	}
}

// mobileNumber normalizes the lead's phone to E.164 and rejects non-mobile
// lines, which can receive neither whatsapp nor sms.
func (d *Dispatcher) mobileNumber(raw string) (string, error) {
	normalized, err := phone.Normalize(raw, d.region)
	if err != nil {
		return "", domain.NewValidationError(fmt.Sprintf("lead has no valid phone number: %v", err))
	}

	mobile, err := phone.IsMobile(normalized, d.region)
	if err != nil {
		return "", domain.NewValidationError(fmt.Sprintf("lead has no valid phone number: %v", err))
	}
	if !mobile {
		return "", domain.NewValidationError("lead phone number is not a mobile line")
	}

	return normalized, nil
}
