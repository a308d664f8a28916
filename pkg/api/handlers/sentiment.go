package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leadpulse/pkg/api/errors"
	"github.com/jordanlanch/leadpulse/pkg/conversation"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/jobs"
	"github.com/jordanlanch/leadpulse/pkg/sentiment"
)

// SentimentHandler handles inbound message analysis.
type SentimentHandler struct {
	sentimentService *sentiment.Service
	store            conversation.Store
	tracker          *jobs.Tracker
	validator        *validator.Validate
}

// NewSentimentHandler creates a new sentiment handler. store and tracker
// may be nil when history recording isn't wanted.
func NewSentimentHandler(sentimentService *sentiment.Service, store conversation.Store, tracker *jobs.Tracker) *SentimentHandler {
	return &SentimentHandler{
		sentimentService: sentimentService,
		store:            store,
		tracker:          tracker,
		validator:        validator.New(),
	}
}

// AnalyzeRequest carries one inbound message.
type AnalyzeRequest struct {
	Message string         `json:"message" validate:"required"`
	Channel domain.Channel `json:"channel,omitempty"`
}

// AnalyzeMessage records an inbound message and returns its analysis.
// POST /api/v1/leads/:id/messages/analyze
func (h *SentimentHandler) AnalyzeMessage(c echo.Context) error {
	leadID := c.Param("id")
	if leadID == "" {
		return errors.ValidationError(c, domain.NewValidationError("lead id is required"))
	}

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}
	channel := req.Channel
	if channel == "" {
		channel = domain.ChannelWhatsApp
	}
	if !channel.Valid() {
		return errors.ValidationError(c, domain.NewValidationError("unsupported channel"))
	}

	ctx := c.Request().Context()

	if h.store != nil {
		msg := domain.Message{
			Direction: domain.DirectionInbound,
			Channel:   channel,
			Content:   req.Message,
			At:        time.Now(),
		}
		if err := h.store.Append(ctx, leadID, msg); err != nil {
			return errors.InternalError(c, err)
		}
	}
	if h.tracker != nil {
		h.tracker.Touch(leadID)
	}

	analysis := h.sentimentService.AnalyzeMessage(ctx, leadID, req.Message)
	return c.JSON(http.StatusOK, analysis)
}
