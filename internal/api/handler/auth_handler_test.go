package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/core/domain"
	"github.com/agriscan/platform/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn         func(ctx context.Context, phone, password string) (string, *domain.User, error)
	profileFn       func(ctx context.Context, userID string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, phone, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, phone, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, update)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Phone != "0244123456" || input.Role != "farmer" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "u1", Phone: "+233244123456", FullName: input.FullName, Role: input.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"phone":"0244123456","password":"harvest2024","fullName":"Ama Mensah","role":"farmer"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["userId"] != "u1" || data["phone"] != "+233244123456" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := data["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	// Password below the minimum, role unknown.
	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"phone":"0244123456","password":"short","fullName":"Ama","role":"boss"}`)

	err := h.Register(c)
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fields["password"]; !ok {
		t.Fatalf("expected password failure, got %+v", fields)
	}
	if _, ok := fields["role"]; !ok {
		t.Fatalf("expected role failure, got %+v", fields)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, phone, password string) (string, *domain.User, error) {
			return "tok-1", &domain.User{ID: "u1", FullName: "Ama Mensah", Role: "farmer"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"phone":"0244123456","password":"harvest2024"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok-1" {
		t.Fatalf("expected token at top level, got %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["fullName"] != "Ama Mensah" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, phone, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"phone":"0244123456","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile_DropsImmutableFields(t *testing.T) {
	var got ports.ProfileUpdate
	stub := &stubAuthService{
		updateProfileFn: func(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
			got = update
			return &domain.User{ID: userID, FullName: "Ama"}, nil
		},
	}
	h := NewAuthHandler(stub)

	// phone and role are not part of the update schema: silently ignored.
	c, rec := newTestContext(t, http.MethodPut, "/auth/profile",
		`{"fullName":"Ama","phone":"+15550000000","role":"inspector"}`)
	c.Set("uid", "u1")
	c.Set("role", "farmer")

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.FullName == nil || *got.FullName != "Ama" {
		t.Fatalf("expected full name update, got %+v", got)
	}
	if got.City != nil || got.State != nil || got.GPSLat != nil || got.GPSLng != nil {
		t.Fatalf("unexpected field updates: %+v", got)
	}
}

func TestAuthHandler_GetProfile_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/auth/profile", "")

	err := h.GetProfile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
