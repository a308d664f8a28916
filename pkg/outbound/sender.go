package outbound

import "context"

// Recipient identifies where a follow-up step is delivered.
type Recipient struct {
	LeadID string `json:"lead_id" validate:"required"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty"`
}

// EmailSender delivers email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to Recipient, subject, body string) error
}

// WhatsAppSender delivers WhatsApp messages to an E.164 phone number.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, toPhone, body string) error
}

// SMSSender delivers SMS messages to an E.164 phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, toPhone, body string) error
}
