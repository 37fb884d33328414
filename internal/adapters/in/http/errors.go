package http

import (
	"errors"
	"net/http"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgValidation      = "Validation Error"
	msgDuplicate       = "Duplicate order number"
	msgNotFound        = "Order not found"
	msgInvalidID       = "Invalid order id"
	msgInvalidBody     = "Invalid request body"
	msgInvalidQuery    = "Invalid query parameter"
	msgInvalidFile     = "Invalid import file"
	msgSomethingWrong  = "Something went wrong!"
	msgDeleted         = "Order deleted successfully"
	resultSuccess      = "success"
	resultValidation   = "validation"
	resultDuplicate    = "duplicate"
	resultNotFound     = "not_found"
	resultStorage      = "storage"
	resultUnclassified = "error"
)

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// violationDetail is one broken rule. rollIndex is 1-based and omitted for
// order-level fields.
type violationDetail struct {
	Field     string `json:"field"`
	Message   string `json:"message"`
	RollIndex int    `json:"rollIndex,omitempty"`
}

type validationResponse struct {
	Message string            `json:"message"`
	Errors  []string          `json:"errors"`
	Details []violationDetail `json:"details"`
}

func newValidationResponse(e *order.ValidationError) validationResponse {
	details := make([]violationDetail, 0, len(e.Violations))
	for _, v := range e.Violations {
		details = append(details, violationDetail{
			Field:     v.Field,
			Message:   v.Message,
			RollIndex: v.RollIndex,
		})
	}
	return validationResponse{
		Message: msgValidation,
		Errors:  e.Messages(),
		Details: details,
	}
}

// respondError writes the response for a use-case error.
func (s *Server) respondError(c echo.Context, err error) error {
	var validation *order.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, newValidationResponse(validation))
	case errors.Is(err, order.ErrDuplicateOrderNumber):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgDuplicate, Error: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: msgNotFound})
	default:
		s.logger.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: msgSomethingWrong, Error: err.Error()})
	}
}

// describe renders an import failure as a headline plus the individual
// violations.
func describe(err error) (string, []string) {
	var validation *order.ValidationError
	switch {
	case errors.As(err, &validation):
		return msgValidation, validation.Messages()
	case errors.Is(err, order.ErrDuplicateOrderNumber):
		return msgDuplicate, []string{err.Error()}
	default:
		return msgSomethingWrong, []string{err.Error()}
	}
}

// outcome is the metric label of a use-case result.
func outcome(err error) string {
	var validation *order.ValidationError
	switch {
	case err == nil:
		return resultSuccess
	case errors.As(err, &validation):
		return resultValidation
	case errors.Is(err, order.ErrDuplicateOrderNumber):
		return resultDuplicate
	case errors.Is(err, errs.ErrObjectNotFound):
		return resultNotFound
	case errors.Is(err, errs.ErrStorageUnavailable):
		return resultStorage
	default:
		return resultUnclassified
	}
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
