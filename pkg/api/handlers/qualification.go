package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leadpulse/pkg/api/errors"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/outbound"
	"github.com/jordanlanch/leadpulse/pkg/scoring"
	"github.com/jordanlanch/leadpulse/pkg/sequence"
)

// BusinessDefaults fills the sequence context fields a caller omits with
// the configured business identity.
type BusinessDefaults struct {
	Name     string
	Industry string
}

// QualificationHandler handles scoring, sequence and outreach endpoints.
type QualificationHandler struct {
	scoringService  *scoring.Service
	sequenceService *sequence.Service
	dispatcher      *outbound.Dispatcher
	business        BusinessDefaults
	validator       *validator.Validate
}

// NewQualificationHandler creates a new qualification handler.
func NewQualificationHandler(scoringService *scoring.Service, sequenceService *sequence.Service, dispatcher *outbound.Dispatcher, business BusinessDefaults) *QualificationHandler {
	return &QualificationHandler{
		scoringService:  scoringService,
		sequenceService: sequenceService,
		dispatcher:      dispatcher,
		business:        business,
		validator:       validator.New(),
	}
}

func (h *QualificationHandler) applyBusinessDefaults(c *sequence.Context) {
	if c.BusinessName == "" {
		c.BusinessName = h.business.Name
	}
	if c.BusinessIndustry == "" {
		c.BusinessIndustry = h.business.Industry
	}
}

// ScoreLead scores a lead from its qualification criteria.
// POST /api/v1/leads/score
func (h *QualificationHandler) ScoreLead(c echo.Context) error {
	var req scoring.Criteria
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	score := h.scoringService.ScoreLead(c.Request().Context(), req)
	return c.JSON(http.StatusOK, score)
}

// GenerateSequence builds a 5-step follow-up sequence for a lead.
// POST /api/v1/sequences/generate
func (h *QualificationHandler) GenerateSequence(c echo.Context) error {
	var req sequence.Context
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	h.applyBusinessDefaults(&req)
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	seq := h.sequenceService.GenerateSequence(c.Request().Context(), req)
	return c.JSON(http.StatusOK, seq)
}

// DispatchRequest carries one step and its recipient.
type DispatchRequest struct {
	Lead outbound.Recipient    `json:"lead" validate:"required"`
	Step sequence.FollowUpStep `json:"step" validate:"required"`
}

// DispatchStep delivers a follow-up step over its channel.
// POST /api/v1/sequences/dispatch
func (h *QualificationHandler) DispatchStep(c echo.Context) error {
	var req DispatchRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.dispatcher.DispatchStep(c.Request().Context(), req.Lead, req.Step); err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "sent",
		"lead_id": req.Lead.LeadID,
		"step":    req.Step.StepNumber,
		"channel": req.Step.Channel,
	})
}

// PersonalizeRequest carries a message template plus the lead context.
type PersonalizeRequest struct {
	Template string           `json:"template" validate:"required"`
	Context  sequence.Context `json:"context" validate:"required"`
	Points   []string         `json:"points,omitempty"`
}

// PersonalizeMessage rewrites a template for a specific lead.
// POST /api/v1/messages/personalize
func (h *QualificationHandler) PersonalizeMessage(c echo.Context) error {
	var req PersonalizeRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	h.applyBusinessDefaults(&req.Context)
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	message, aiGenerated := h.sequenceService.PersonalizeMessage(
		c.Request().Context(), req.Template, req.Context, req.Points)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      message,
		"ai_generated": aiGenerated,
	})
}

// TimingRequest carries the reply history used to pick a contact slot.
type TimingRequest struct {
	Industry string           `json:"industry" validate:"required"`
	Channel  domain.Channel   `json:"channel" validate:"required"`
	History  []domain.Message `json:"history,omitempty"`
}

// SuggestTiming recommends the best day and time to contact a lead.
// POST /api/v1/timing/suggest
func (h *QualificationHandler) SuggestTiming(c echo.Context) error {
	var req TimingRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}
	if !req.Channel.Valid() {
		return errors.ValidationError(c, domain.NewValidationError("unsupported channel"))
	}

	suggestion := h.sequenceService.SuggestOptimalTiming(
		c.Request().Context(), req.History, req.Industry, req.Channel)

	return c.JSON(http.StatusOK, suggestion)
}
