// Package web serves the operator dashboard as server-rendered pages on
// localhost. Every protected page goes through the gate before rendering.
package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/dashboard/client"
	"github.com/agriscan/platform/internal/dashboard/gate"
	"github.com/agriscan/platform/internal/dashboard/session"
)

const (
	routeUnauthorized = "/unauthorized"
)

// Server is the dashboard web frontend.
type Server struct {
	echo    *echo.Echo
	session *session.Manager
	api     *client.Client
	nav     *NavRecorder
	log     zerolog.Logger
}

func NewServer(sess *session.Manager, api *client.Client, nav *NavRecorder, log zerolog.Logger) (*Server, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = r
	e.Use(echomiddleware.Recover())

	s := &Server{echo: e, session: sess, api: api, nav: nav, log: log}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo

	// Public surfaces.
	e.GET(session.RouteLogin, s.loginPage)
	e.POST(session.RouteLogin, s.loginSubmit)
	e.GET("/signup", s.signupPage)
	e.POST("/signup", s.signupSubmit)
	e.GET(routeUnauthorized, s.unauthorizedPage)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, session.RouteDashboard)
	})

	// Authenticated surfaces.
	authed := s.guard(gate.Authenticated)
	e.GET(session.RouteDashboard, s.homePage, authed)
	e.GET("/reports", s.reportsPage, authed)
	e.GET("/reports/:id", s.reportDetailPage, authed)
	e.GET("/profile", s.profilePage, authed)
	e.POST("/profile", s.profileSubmit, authed)
	e.POST("/logout", s.logoutSubmit, authed)
	e.GET("/map", s.mapPage, authed)

	// Inspector-only surfaces.
	inspector := s.guard(gate.RequireRoles(domain.RoleInspector))
	e.POST("/reports/:id/review", s.reviewSubmit, inspector)
	e.GET("/alerts", s.alertsPage, inspector)
	e.POST("/alerts", s.alertCreateSubmit, inspector)
	e.POST("/alerts/:id/delete", s.alertDeleteSubmit, inspector)
	e.GET("/farmers", s.farmersPage, inspector)
}

// guard wires a gate requirement in front of a page. The verdict maps to
// HTTP: a bootstrapping session gets the neutral loading page, never the
// protected content.
func (s *Server) guard(req gate.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := s.session.Snapshot()
			switch gate.Evaluate(snap, req) {
			case gate.Placeholder:
				return c.Render(http.StatusOK, "loading.html", nil)
			case gate.RedirectLogin:
				return c.Redirect(http.StatusFound, session.RouteLogin)
			case gate.RedirectUnauthorized:
				return c.Redirect(http.StatusFound, routeUnauthorized)
			default:
				return next(c)
			}
		}
	}
}

// fail renders errors in page context. A credential rejection invalidates
// the session and lands on the login view.
func (s *Server) fail(c echo.Context, err error) error {
	var authErr *client.AuthError
	if errors.As(err, &authErr) {
		s.session.Invalidate()
		return c.Redirect(http.StatusFound, s.nav.Consume(session.RouteLogin))
	}

	s.log.Error().Err(err).Str("path", c.Path()).Msg("page request failed")
	return c.Render(http.StatusBadGateway, "error.html", map[string]any{
		"Message": err.Error(),
	})
}

// Start begins serving on addr. It blocks until Shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Echo exposes the underlying instance for shutdown and tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
