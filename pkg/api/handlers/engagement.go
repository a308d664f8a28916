package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leadpulse/pkg/api/errors"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/engagement"
)

// EngagementHandler serves engagement patterns.
type EngagementHandler struct {
	engagementService *engagement.Service
}

// NewEngagementHandler creates a new engagement handler.
func NewEngagementHandler(engagementService *engagement.Service) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// GetEngagement recomputes and returns the lead's engagement pattern.
// GET /api/v1/leads/:id/engagement
func (h *EngagementHandler) GetEngagement(c echo.Context) error {
	leadID := c.Param("id")
	if leadID == "" {
		return errors.ValidationError(c, domain.NewValidationError("lead id is required"))
	}

	pattern, err := h.engagementService.ComputeEngagementPattern(c.Request().Context(), leadID)
	if err != nil {
		return errors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, pattern)
}
