package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/api/metrics"
	"github.com/agriscan/platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Phone    string  `json:"phone"    validate:"required"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"fullName" validate:"required"`
	Role     string  `json:"role"     validate:"required,oneof=farmer inspector"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	GPSLat   float64 `json:"gpsLat"   validate:"gte=-90,lte=90"`
	GPSLng   float64 `json:"gpsLng"   validate:"gte=-180,lte=180"`
}

type loginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest carries only the mutable profile fields. Immutable
// fields (phone, role, userId) sent by a client are silently dropped by the
// bind, matching the update contract.
type updateProfileRequest struct {
	FullName *string  `json:"fullName"`
	City     *string  `json:"city"`
	State    *string  `json:"state"`
	GPSLat   *float64 `json:"gpsLat"`
	GPSLng   *float64 `json:"gpsLng"`
}

// Register creates a new account. It does not log the user in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  envelope
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		City:     req.City,
		State:    req.State,
		GPSLat:   req.GPSLat,
		GPSLng:   req.GPSLng,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, user)
}

// Login authenticates by phone and password and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, envelope{Success: true, Data: user, Token: token})
}

// GetProfile returns the authenticated account's profile.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// UpdateProfile updates the mutable profile fields and returns the stored
// record.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields to change"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), uid, ports.ProfileUpdate{
		FullName: req.FullName,
		City:     req.City,
		State:    req.State,
		GPSLat:   req.GPSLat,
		GPSLng:   req.GPSLng,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}
