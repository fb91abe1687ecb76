package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/dashboard/client"
	"github.com/agriscan/platform/internal/dashboard/session"
)

func (s *Server) loginPage(c echo.Context) error {
	if s.session.Snapshot().IsAuthenticated() {
		return c.Redirect(http.StatusFound, session.RouteDashboard)
	}
	return c.Render(http.StatusOK, "login.html", map[string]any{})
}

func (s *Server) loginSubmit(c echo.Context) error {
	phone := c.FormValue("phone")
	password := c.FormValue("password")

	err := s.session.Login(c.Request().Context(), phone, password)
	if err == nil {
		return c.Redirect(http.StatusFound, s.nav.Consume(session.RouteDashboard))
	}

	data := map[string]any{"Phone": phone}
	var authErr *client.AuthError
	var valErr *client.ValidationError
	switch {
	case errors.As(err, &authErr):
		data["Error"] = "Invalid phone number or password."
	case errors.As(err, &valErr):
		data["Error"] = valErr.Message
		data["Fields"] = valErr.Fields
	default:
		data["Error"] = "Could not reach the platform. Try again."
		s.log.Warn().Err(err).Msg("login request failed")
	}
	return c.Render(http.StatusOK, "login.html", data)
}

func (s *Server) signupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", map[string]any{})
}

func (s *Server) signupSubmit(c echo.Context) error {
	lat, _ := strconv.ParseFloat(c.FormValue("gpsLat"), 64)
	lng, _ := strconv.ParseFloat(c.FormValue("gpsLng"), 64)

	input := client.RegisterInput{
		Phone:    c.FormValue("phone"),
		Password: c.FormValue("password"),
		FullName: c.FormValue("fullName"),
		Role:     c.FormValue("role"),
		City:     c.FormValue("city"),
		State:    c.FormValue("state"),
		GPSLat:   lat,
		GPSLng:   lng,
	}

	_, err := s.api.Register(c.Request().Context(), input)
	if err == nil {
		// Registration never logs the account in: back to login.
		return c.Render(http.StatusOK, "login.html", map[string]any{
			"Notice": "Account created. Sign in to continue.",
			"Phone":  input.Phone,
		})
	}

	data := map[string]any{"Form": input}
	var valErr *client.ValidationError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &valErr):
		data["Error"] = valErr.Message
		data["Fields"] = valErr.Fields
	case errors.As(err, &apiErr) && apiErr.Code == "USER_EXISTS":
		data["Error"] = "That phone number is already registered."
	default:
		data["Error"] = "Could not reach the platform. Try again."
		s.log.Warn().Err(err).Msg("signup request failed")
	}
	return c.Render(http.StatusOK, "signup.html", data)
}

func (s *Server) logoutSubmit(c echo.Context) error {
	s.session.Logout()
	return c.Redirect(http.StatusFound, s.nav.Consume(session.RouteLogin))
}

func (s *Server) unauthorizedPage(c echo.Context) error {
	return c.Render(http.StatusOK, "unauthorized.html", map[string]any{
		"User": s.session.Snapshot().User,
	})
}
