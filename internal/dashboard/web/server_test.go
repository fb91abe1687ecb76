package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/dashboard/client"
	"github.com/agriscan/platform/internal/dashboard/session"
	"github.com/agriscan/platform/internal/dashboard/tokenstore"
)

// newStubBackend serves just enough of the platform API to restore a
// session for the given role and render the map page.
func newStubBackend(t *testing.T, role string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/profile":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"userId": "u1", "fullName": "Kofi", "role": role},
			})
		case "/stats/geographical":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": []map[string]any{
					{"state": "Northern", "reports": 4, "highSeverity": 1},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]any{"code": "NOT_FOUND", "message": "not found"},
			})
		}
	}))
}

func newTestServer(t *testing.T, backend *httptest.Server, token string) *Server {
	tokens := tokenstore.NewMemoryStore()
	if token != "" {
		_ = tokens.Set(token)
	}
	api := client.New(backend.URL, tokens)
	nav := NewNavRecorder()
	sess := session.NewManager(api, tokens, nav, zerolog.Nop())
	sess.Bootstrap(context.Background())

	srv, err := NewServer(sess, api, nav, zerolog.Nop())
	if err != nil {
		t.Fatalf("server init failed: %v", err)
	}
	return srv
}

func TestRoutes_MapRendersForFarmer(t *testing.T) {
	backend := newStubBackend(t, "farmer")
	defer backend.Close()
	srv := newTestServer(t, backend, "tok-1")

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/map", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Northern") {
		t.Fatalf("expected breakdown rows in page, got %s", rec.Body.String())
	}
}

func TestRoutes_AlertsStayInspectorOnly(t *testing.T) {
	backend := newStubBackend(t, "farmer")
	defer backend.Close()
	srv := newTestServer(t, backend, "tok-1")

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != routeUnauthorized {
		t.Fatalf("expected redirect to %s, got %s", routeUnauthorized, loc)
	}
}

func TestRoutes_MapRequiresLogin(t *testing.T) {
	backend := newStubBackend(t, "farmer")
	defer backend.Close()
	srv := newTestServer(t, backend, "")

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/map", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != session.RouteLogin {
		t.Fatalf("expected redirect to %s, got %s", session.RouteLogin, loc)
	}
}
