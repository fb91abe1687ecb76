package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/core/ports"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type overviewResponse struct {
	TotalReports          int64            `json:"totalReports"`
	PendingReports        int64            `json:"pendingReports"`
	ReportsThisWeek       int64            `json:"reportsThisWeek"`
	TotalFarmers          int64            `json:"totalFarmers"`
	SeverityDistribution  map[string]int64 `json:"severityDistribution"`
	PlantTypeDistribution map[string]int64 `json:"plantTypeDistribution"`
}

type stateCountResponse struct {
	State        string `json:"state"`
	Reports      int64  `json:"reports"`
	HighSeverity int64  `json:"highSeverity"`
}

// Overview handles GET /stats/overview.
//
// @Summary      Dashboard overview aggregates
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "7d, 30d or 90d; empty means all time"
// @Param        state   query  string  false  "State filter"
// @Success      200  {object}  envelope
// @Router       /stats/overview [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	stats, err := h.service.Overview(c.Request().Context(), ports.OverviewInput{
		Period: c.QueryParam("period"),
		State:  c.QueryParam("state"),
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, overviewResponse{
		TotalReports:          stats.TotalReports,
		PendingReports:        stats.PendingReports,
		ReportsThisWeek:       stats.ReportsThisWeek,
		TotalFarmers:          stats.TotalFarmers,
		SeverityDistribution:  stats.SeverityDistribution,
		PlantTypeDistribution: stats.PlantTypeDistribution,
	})
}

// Geographical handles GET /stats/geographical.
//
// @Summary      Per-state report breakdown
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        period       query  string  false  "7d, 30d or 90d; empty means all time"
// @Param        plantTypeId  query  string  false  "Plant type filter"
// @Param        diseaseId    query  string  false  "Disease filter"
// @Success      200  {object}  envelope
// @Router       /stats/geographical [get]
func (h *StatsHandler) Geographical(c echo.Context) error {
	rows, err := h.service.Geographical(c.Request().Context(), ports.GeoInput{
		Period:      c.QueryParam("period"),
		PlantTypeID: c.QueryParam("plantTypeId"),
		DiseaseID:   c.QueryParam("diseaseId"),
	})
	if err != nil {
		return err
	}

	out := make([]stateCountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, stateCountResponse{
			State:        r.State,
			Reports:      r.Reports,
			HighSeverity: r.HighSeverity,
		})
	}
	return respond(c, http.StatusOK, out)
}
