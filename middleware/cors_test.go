package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowedOrigins := []string{
		"https://casetrack-prod.fly.dev",
		"http://localhost:5173",
	}

	testCases := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"Production origin", "https://casetrack-prod.fly.dev", true},
		{"Vite dev server", "http://localhost:5173", true},
		{"Disallowed origin", "https://evil.com", false},
		{"Empty origin", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isAllowedOrigin(tc.origin, allowedOrigins)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v for origin %s", tc.expected, result, tc.origin)
			}
		})
	}
}

func TestGetAllowedOrigins(t *testing.T) {
	originalCors := os.Getenv("CORS_ALLOWED_ORIGINS")
	defer os.Setenv("CORS_ALLOWED_ORIGINS", originalCors)

	os.Setenv("CORS_ALLOWED_ORIGINS", "https://test1.com,https://test2.com")
	origins := getAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://test1.com" || origins[1] != "https://test2.com" {
		t.Errorf("Expected the env-configured origins, got %v", origins)
	}

	// With the variable unset the defaults must cover local development
	os.Unsetenv("CORS_ALLOWED_ORIGINS")
	origins = getAllowedOrigins()
	hasLocalhost := false
	for _, origin := range origins {
		if strings.Contains(origin, "localhost") {
			hasLocalhost = true
			break
		}
	}
	if !hasLocalhost {
		t.Error("Default origins should include localhost development servers")
	}
}

func TestIsDevelopmentMode(t *testing.T) {
	originalEnv := os.Getenv("ENV")
	defer os.Setenv("ENV", originalEnv)

	os.Unsetenv("ENV")
	if !isDevelopmentMode() {
		t.Error("With ENV unset, should be in development mode")
	}

	os.Setenv("ENV", "production")
	if isDevelopmentMode() {
		t.Error("With ENV=production, should not be in development mode")
	}
}

func TestEnableCORSPreflight(t *testing.T) {
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight request should not reach the inner handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/tickets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Expected Access-Control-Allow-Methods header to be set")
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("Expected Access-Control-Allow-Headers header to be set")
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected the request origin to be reflected, got %q", got)
	}
}

func TestCORSWithNonAllowedOrigin(t *testing.T) {
	originalEnv := os.Getenv("ENV")
	defer os.Setenv("ENV", originalEnv)
	os.Setenv("ENV", "production")

	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/tickets", nil)
	req.Header.Set("Origin", "https://evil.com")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	allowOrigin := rr.Header().Get("Access-Control-Allow-Origin")
	if allowOrigin == "https://evil.com" {
		t.Error("Non-allowed origin should not be reflected in Access-Control-Allow-Origin")
	}
	if allowOrigin == "" {
		t.Error("Access-Control-Allow-Origin should fall back to a default value")
	}
}
