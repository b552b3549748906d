package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to its HTTP status. Validation errors
// are checked last because domain errors may wrap them.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrConsistencyViolation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrLockTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) errorResponse(ctx echo.Context, err error) error {
	code := statusOf(err)
	body := servers.Error{Code: code, Message: err.Error()}

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		body.Message = "Internal server error"
	}
	if errs.IsRetryable(err) {
		retryable := true
		body.Retryable = &retryable
	}
	return ctx.JSON(code, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
