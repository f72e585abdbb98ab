package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{
		"http://localhost:3000",
		"http://127.0.0.1:7788",
		"http://192.168.1.50",
		"http://10.20.30.40:8080",
		"http://mybox.local",
		"http://nas:7788",
		"http://[::1]:7788",
	}
	for _, origin := range allowed {
		if !IsAllowedOrigin(origin) {
			t.Errorf("expected %q to be allowed", origin)
		}
	}

	blocked := []string{
		"",
		"http://example.com",
		"https://evil.example.com:7788",
		"http://8.8.8.8",
		"not a url",
	}
	for _, origin := range blocked {
		if IsAllowedOrigin(origin) {
			t.Errorf("expected %q to be blocked", origin)
		}
	}
}

func TestRouterSetsCORSHeadersForTrustedOrigin(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
}

func TestRouterOmitsCORSHeadersForPublicOrigin(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("public origin must not be allowed, got %q", got)
	}
}
