package outbound

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jordanlanch/leadpulse/pkg/logger"
)

// WhatsAppGateway sends messages through a wuzapi-style HTTP gateway.
type WhatsAppGateway struct {
	httpClient *resty.Client
	logger     logger.Logger
}

// NewWhatsAppGateway creates a gateway client.
func NewWhatsAppGateway(baseURL, token string, log logger.Logger) (*WhatsAppGateway, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("whatsapp gateway baseURL cannot be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("whatsapp gateway token cannot be empty")
	}
	if log == nil {
		log = logger.Default()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Token", token).
		SetTimeout(10 * time.Second)

	return &WhatsAppGateway{httpClient: client, logger: log}, nil
}

type whatsAppTextPayload struct {
	Phone string `json:"Phone"`
	Body  string `json:"Body"`
}

func (g *WhatsAppGateway) SendWhatsApp(ctx context.Context, toPhone, body string) error {
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetBody(whatsAppTextPayload{Phone: toPhone, Body: body}).
		Post("/chat/send/text")
	if err != nil {
		return fmt.Errorf("whatsapp gateway request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("whatsapp gateway error: status %s, body: %s", resp.Status(), resp.String())
	}

	g.logger.Debug("whatsapp message sent", "to", toPhone)
	return nil
}
