package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agriscan/platform/internal/dashboard/tokenstore"
)

func newTestClient(handler http.HandlerFunc) (*Client, *tokenstore.MemoryStore, *httptest.Server) {
	srv := httptest.NewServer(handler)
	tokens := tokenstore.NewMemoryStore()
	return New(srv.URL, tokens), tokens, srv
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, tokens, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"userId": "u1", "fullName": "Ama"},
		})
	})
	defer srv.Close()
	_ = tokens.Set("tok-1")

	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if user.ID != "u1" || user.FullName != "Ama" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	})
	defer srv.Close()

	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestClient_Login_ReturnsTopLevelToken(t *testing.T) {
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["phone"] != "0244123456" {
			t.Fatalf("unexpected payload: %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-1",
			"data":    map[string]any{"userId": "u1", "role": "farmer"},
		})
	})
	defer srv.Close()

	token, user, err := c.Login(context.Background(), "0244123456", "harvest2024")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "tok-1" || user.ID != "u1" {
		t.Fatalf("unexpected result: %q %+v", token, user)
	}
}

func TestClient_MapsAuthError(t *testing.T) {
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "TOKEN_INVALID", "message": "invalid or expired token"},
		})
	})
	defer srv.Close()

	_, err := c.Profile(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Code != "TOKEN_INVALID" {
		t.Fatalf("unexpected code: %s", authErr.Code)
	}
}

func TestClient_MapsValidationError(t *testing.T) {
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error": map[string]any{
				"code":    "VALIDATION_ERROR",
				"message": "request validation failed",
				"details": map[string]string{"phone": "is required"},
			},
		})
	})
	defer srv.Close()

	_, err := c.Register(context.Background(), RegisterInput{})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Fields["phone"] != "is required" {
		t.Fatalf("unexpected fields: %+v", valErr.Fields)
	}
}

func TestClient_MapsAPIError(t *testing.T) {
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "USER_EXISTS", "message": "phone number already registered"},
		})
	})
	defer srv.Close()

	_, err := c.Register(context.Background(), RegisterInput{Phone: "0244123456"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != "USER_EXISTS" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_MapsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listening anymore

	c := New(url, tokenstore.NewMemoryStore())
	_, err := c.Profile(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestClient_UpdateProfile_OmitsUnsetFields(t *testing.T) {
	var gotBody map[string]any
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"userId": "u1"}})
	})
	defer srv.Close()

	name := "Ama Mensah"
	if _, err := c.UpdateProfile(context.Background(), ProfileUpdate{FullName: &name}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if gotBody["fullName"] != "Ama Mensah" {
		t.Fatalf("expected fullName in payload, got %+v", gotBody)
	}
	for _, field := range []string{"city", "state", "gpsLat", "gpsLng", "phone", "role", "userId"} {
		if _, present := gotBody[field]; present {
			t.Fatalf("unset field %q must not be sent: %+v", field, gotBody)
		}
	}
}

func TestClient_ListReports_BuildsQuery(t *testing.T) {
	var gotQuery string
	c, _, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"items":      []any{},
				"pagination": map[string]any{"total": 0, "page": 1, "limit": 20, "totalPages": 0},
			},
		})
	})
	defer srv.Close()

	_, err := c.ListReports(context.Background(), ListReportsOptions{Page: 2, Status: "pending", State: "Northern"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotQuery != "page=2&state=Northern&status=pending" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
}
