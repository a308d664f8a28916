package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/logger"
)

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

var log = logger.Default()

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Warn("validation error", "path", c.Request().URL.Path, "error", err)

	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Error("internal error", "path", c.Request().URL.Path, "error", err)

	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   "not_found",
		Message: "The requested resource was not found.",
	})
}

// FromDomain maps a domain error to the matching HTTP status. Domain
// validation messages are written for callers, so they are exposed as-is.
func FromDomain(c echo.Context, err error) error {
	var de *domain.DomainError
	if !stderrors.As(err, &de) {
		return InternalError(c, err)
	}

	switch de.Code {
	case domain.ErrCodeNotFound:
		return NotFoundError(c, "")
	case domain.ErrCodeValidation, domain.ErrCodeBadRequest:
		log.Warn("validation error", "path", c.Request().URL.Path, "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: de.Message,
		})
	default:
		return InternalError(c, err)
	}
}
