package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/api/metrics"
	"github.com/agriscan/platform/internal/core/ports"
)

// AlertHandler handles HTTP requests for regional advisories.
type AlertHandler struct {
	service ports.AlertService
}

func NewAlertHandler(service ports.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

type createAlertRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=info warning danger"`
	TargetState string `json:"targetState" validate:"required"`
	TargetCity  string `json:"targetCity"`
	ExpiresAt   string `json:"expiresAt"`
}

type updateAlertRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity" validate:"omitempty,oneof=info warning danger"`
	ExpiresAt   *string `json:"expiresAt"`
}

type listAlertsQuery struct {
	Severity string `query:"severity"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type listAlertsResponse struct {
	Items      any                `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

// Create handles POST /alerts.
//
// @Summary      Create a regional advisory
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAlertRequest  true  "Alert"
// @Success      201   {object}  envelope
// @Failure      422   {object}  map[string]any
// @Router       /alerts [post]
func (h *AlertHandler) Create(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	expiresAt, err := parseDate(req.ExpiresAt)
	if err != nil {
		return FieldErrors{"expiresAt": "must be an RFC 3339 timestamp or YYYY-MM-DD date"}
	}

	alert, err := h.service.Create(c.Request().Context(), ports.CreateAlertInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		TargetState: req.TargetState,
		TargetCity:  req.TargetCity,
		CreatedBy:   uid,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return err
	}

	metrics.AlertsCreatedTotal.WithLabelValues(req.Severity).Inc()
	return respond(c, http.StatusCreated, alert)
}

// Update handles PUT /alerts/:id. Absent fields are left unchanged.
//
// @Summary      Update an advisory
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Alert id"
// @Param        body  body      updateAlertRequest  true  "Changes"
// @Success      200   {object}  envelope
// @Failure      404   {object}  map[string]any
// @Router       /alerts/{id} [put]
func (h *AlertHandler) Update(c echo.Context) error {
	var req updateAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := parseDate(*req.ExpiresAt)
		if err != nil {
			return FieldErrors{"expiresAt": "must be an RFC 3339 timestamp or YYYY-MM-DD date"}
		}
		expiresAt = &t
	}

	alert, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateAlertInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, alert)
}

// Delete handles DELETE /alerts/:id.
//
// @Summary      Delete an advisory
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Alert id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /alerts/{id} [delete]
func (h *AlertHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"id": c.Param("id")})
}

// List handles GET /alerts.
//
// @Summary      List advisories
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        severity  query  string  false  "Severity filter"
// @Param        page      query  int     false  "Page (1-based)"
// @Param        limit     query  int     false  "Page size"
// @Success      200  {object}  envelope
// @Router       /alerts [get]
func (h *AlertHandler) List(c echo.Context) error {
	var q listAlertsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	result, err := h.service.List(c.Request().Context(), ports.ListAlertsInput{
		Severity: q.Severity,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, listAlertsResponse{
		Items: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
