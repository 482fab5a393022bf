package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/auth"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/config"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/store"
)

func testServer(t *testing.T) (*Server, *auth.TokenManager) {
	t.Helper()
	logging.InitLogger(t.TempDir(), 4)

	cfg := &config.Config{
		Port:           "8000",
		Address:        "127.0.0.1",
		Env:            "dev",
		LogLevel:       "info",
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
		SessionSecret:  "test-secret-at-least-16",
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"*"},
	}
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	return NewServer(cfg, store.New(), tokens), tokens
}

// TestRouteGating verifies the session gate: login, health and metrics are
// public, everything else returns 401 without a session.
func TestRouteGating(t *testing.T) {
	srv, tokens := testServer(t)

	token, err := tokens.Issue(domain.User{ID: "1", Role: domain.RoleAdmin,
		Location: &domain.LocationRef{ID: "central", Name: "CARITAS HQ", Type: domain.LocationCentral}})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		token          string
		expectedStatus int
	}{
		{"health is public", "GET", "/health", "", "", http.StatusOK},
		{"metrics is public", "GET", "/metrics", "", "", http.StatusOK},
		{"login is public", "POST", "/auth/login",
			`{"email":"admin@caritas.org","password":"admin123"}`, "", http.StatusOK},

		{"inventory gated", "GET", "/inventory", "", "", http.StatusUnauthorized},
		{"distributions gated", "GET", "/distributions", "", "", http.StatusUnauthorized},
		{"users gated", "GET", "/users", "", "", http.StatusUnauthorized},
		{"reports gated", "GET", "/reports/summary", "", "", http.StatusUnauthorized},
		{"me gated", "GET", "/auth/me", "", "", http.StatusUnauthorized},

		{"inventory with session", "GET", "/inventory", "", token, http.StatusOK},
		{"me with session", "GET", "/auth/me", "", token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			srv.router.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

// TestRateLimitHeaders verifies every response carries the limit headers.
func TestRateLimitHeaders(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if rr.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected X-RateLimit-Limit header")
	}
	if rr.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("Expected X-RateLimit-Remaining header")
	}
}

// TestOversizedBodyRejected verifies the request size cap.
func TestOversizedBodyRejected(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader("{}"))
	req.Header.Set("Content-Length", "2097152")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", rr.Code)
	}
}

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		path     string
		expected int64
	}{
		{"/health", 5},
		{"/metrics", 5},
		{"/auth/login", 100},
		{"/reports/inventory/export", 100},
		{"/inventory/import", 100},
		{"/inventory", 20},
		{"/distributions", 20},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if got := getTokenCost(req); got != tt.expected {
				t.Errorf("Expected cost %d, got %d", tt.expected, got)
			}
		})
	}
}
