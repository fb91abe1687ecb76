package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

// FarmerHandler serves the inspector-facing farmer directory.
type FarmerHandler struct {
	service ports.FarmerService
}

func NewFarmerHandler(service ports.FarmerService) *FarmerHandler {
	return &FarmerHandler{service: service}
}

type listFarmersQuery struct {
	State string `query:"state"`
	City  string `query:"city"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

type listFarmersResponse struct {
	Items      []*domain.User     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /farmers.
//
// @Summary      List registered farmers
// @Tags         farmers
// @Produce      json
// @Security     BearerAuth
// @Param        state  query  string  false  "State filter"
// @Param        city   query  string  false  "City filter"
// @Param        page   query  int     false  "Page (1-based)"
// @Param        limit  query  int     false  "Page size"
// @Success      200  {object}  envelope
// @Failure      403  {object}  map[string]any
// @Router       /farmers [get]
func (h *FarmerHandler) List(c echo.Context) error {
	var q listFarmersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	result, err := h.service.List(c.Request().Context(), ports.ListFarmersInput{
		State: q.State,
		City:  q.City,
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, listFarmersResponse{
		Items: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
