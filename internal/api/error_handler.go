package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/api/handler"
	"github.com/agriscan/platform/internal/core/domain"
)

// errorBody is the canonical error payload carried inside the envelope.
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// errorResponse is the envelope for all API errors:
// {"success":false,"error":{"code":...,"message":...,"details":{...}}}
type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP statuses and stable codes.
//   - Surfaces request validation failures with per-field details.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Success: false, Error: body})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorBody) {
	// Request schema validation: field-level details for form display.
	var fe handler.FieldErrors
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity, errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Details: fe,
		}
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{
			Code:    statusCode(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorBody{Code: "TOKEN_INVALID", Message: "invalid or expired token"}
	case errors.Is(err, domain.ErrInvalidPhone):
		return http.StatusUnprocessableEntity, errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "invalid phone number",
			Details: map[string]string{"phone": "not a valid phone number"},
		}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorBody{Code: "USER_EXISTS", Message: "phone number already registered"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorBody{Code: "USER_NOT_FOUND", Message: "user not found"}
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, errorBody{Code: "REPORT_NOT_FOUND", Message: "report not found"}
	case errors.Is(err, domain.ErrDuplicateReport):
		return http.StatusConflict, errorBody{Code: "DUPLICATE_REPORT", Message: "a matching report was submitted recently"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorBody{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrAlertNotFound):
		return http.StatusNotFound, errorBody{Code: "ALERT_NOT_FOUND", Message: "alert not found"}
	case errors.Is(err, domain.ErrPlantNotFound):
		return http.StatusNotFound, errorBody{Code: "PLANT_NOT_FOUND", Message: "plant type not found"}
	case errors.Is(err, domain.ErrDiseaseNotFound):
		return http.StatusNotFound, errorBody{Code: "DISEASE_NOT_FOUND", Message: "disease not found"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody{Code: "FORBIDDEN", Message: "access forbidden"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "internal server error"}
}

// statusCode gives generic HTTP failures a stable machine-readable code.
func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		return "ERROR"
	}
}
