package web

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/dashboard/client"
)

// pageData wraps per-page content with the operator record every template
// needs for the navigation bar.
func (s *Server) pageData(content map[string]any) map[string]any {
	if content == nil {
		content = map[string]any{}
	}
	content["User"] = s.session.Snapshot().User
	return content
}

func (s *Server) homePage(c echo.Context) error {
	ctx := c.Request().Context()
	period := c.QueryParam("period")

	stats, err := s.api.Overview(ctx, period, c.QueryParam("state"))
	if err != nil {
		return s.fail(c, err)
	}

	alerts, err := s.api.ListAlerts(ctx, "", 1, 5)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "home.html", s.pageData(map[string]any{
		"Stats":  stats,
		"Alerts": alerts.Items,
		"Period": period,
	}))
}

func (s *Server) reportsPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := s.api.ListReports(c.Request().Context(), client.ListReportsOptions{
		Page:        page,
		Status:      c.QueryParam("status"),
		PlantTypeID: c.QueryParam("plantTypeId"),
		State:       c.QueryParam("state"),
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "reports.html", s.pageData(map[string]any{
		"Reports":    result.Items,
		"Pagination": result.Pagination,
		"Status":     c.QueryParam("status"),
	}))
}

func (s *Server) reportDetailPage(c echo.Context) error {
	report, err := s.api.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "report_detail.html", s.pageData(map[string]any{
		"Report": report,
	}))
}

func (s *Server) reviewSubmit(c echo.Context) error {
	id := c.Param("id")
	status := c.FormValue("status")
	notes := c.FormValue("reviewNotes")

	if _, err := s.api.ReviewReport(c.Request().Context(), id, status, notes); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusFound, "/reports/"+id)
}

func (s *Server) mapPage(c echo.Context) error {
	rows, err := s.api.Geographical(
		c.Request().Context(),
		c.QueryParam("period"),
		c.QueryParam("plantTypeId"),
		c.QueryParam("diseaseId"),
	)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "map.html", s.pageData(map[string]any{
		"States": rows,
	}))
}

func (s *Server) alertsPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := s.api.ListAlerts(c.Request().Context(), c.QueryParam("severity"), page, 0)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "alerts.html", s.pageData(map[string]any{
		"Alerts":     result.Items,
		"Pagination": result.Pagination,
	}))
}

func (s *Server) alertCreateSubmit(c echo.Context) error {
	input := client.CreateAlertInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Severity:    c.FormValue("severity"),
		TargetState: c.FormValue("targetState"),
		TargetCity:  c.FormValue("targetCity"),
		ExpiresAt:   c.FormValue("expiresAt"),
	}

	if _, err := s.api.CreateAlert(c.Request().Context(), input); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusFound, "/alerts")
}

func (s *Server) alertDeleteSubmit(c echo.Context) error {
	if err := s.api.DeleteAlert(c.Request().Context(), c.Param("id")); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusFound, "/alerts")
}

func (s *Server) farmersPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := s.api.Farmers(c.Request().Context(), c.QueryParam("state"), c.QueryParam("city"), page, 0)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Render(http.StatusOK, "farmers.html", s.pageData(map[string]any{
		"Farmers":    result.Items,
		"Pagination": result.Pagination,
	}))
}

func (s *Server) profilePage(c echo.Context) error {
	return c.Render(http.StatusOK, "profile.html", s.pageData(nil))
}

func (s *Server) profileSubmit(c echo.Context) error {
	update := client.ProfileUpdate{}
	if v := c.FormValue("fullName"); v != "" {
		update.FullName = &v
	}
	if v := c.FormValue("city"); v != "" {
		update.City = &v
	}
	if v := c.FormValue("state"); v != "" {
		update.State = &v
	}
	if v := c.FormValue("gpsLat"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			update.GPSLat = &lat
		}
	}
	if v := c.FormValue("gpsLng"); v != "" {
		if lng, err := strconv.ParseFloat(v, 64); err == nil {
			update.GPSLng = &lng
		}
	}

	if _, err := s.session.UpdateProfile(c.Request().Context(), update); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect(http.StatusFound, "/profile")
}
