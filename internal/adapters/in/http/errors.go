package http

import (
	"errors"
	"net/http"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/generated/servers"
	"consignment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPStatus maps an application error to its response status.
func HTTPStatus(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInsufficientPrivilege):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrGateNotSatisfied),
		errors.Is(err, slot.ErrSlotNoLongerAvailable),
		errors.Is(err, order.ErrStaleOrderState),
		errors.Is(err, order.ErrPickTicketFrozen),
		errors.Is(err, order.ErrOperationNotAllowed):
		return http.StatusConflict
	case errors.Is(err, order.ErrCandidateCountOutOfRange),
		errors.Is(err, order.ErrSlotNotOffered),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a route as servers.Error.
// Server errors are logged and their details withheld from the client.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := HTTPStatus(err)
		body := servers.Error{Code: code, Message: err.Error()}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			body.Message = http.StatusText(code)
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		}

		var gateErr *order.GateNotSatisfiedError
		if errors.As(err, &gateErr) {
			gate := string(gateErr.Gate)
			body.Gate = &gate
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
			body.Message = http.StatusText(code)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			logger.Warn("error response not written", zap.Error(writeErr))
		}
	}
}
