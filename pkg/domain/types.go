package domain

import "time"

// Channel is an outreach channel used by follow-up steps and conversations.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// Valid reports whether the channel is one of the supported values.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelWhatsApp, ChannelSMS:
		return true
	}
	return false
}

// Direction indicates who sent a conversation message.
type Direction string

const (
	// DirectionInbound is a message received from the lead.
	DirectionInbound Direction = "inbound"
	// DirectionOutbound is a message sent to the lead.
	DirectionOutbound Direction = "outbound"
)

// Message is a single turn in a lead conversation.
type Message struct {
	Direction Direction `json:"direction"`
	Channel   Channel   `json:"channel"`
	Content   string    `json:"content"`
	At        time.Time `json:"at"`
}

// IsInbound reports whether the message came from the lead.
func (m Message) IsInbound() bool {
	return m.Direction == DirectionInbound
}
