package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jobrunner/nimbus/internal/config"
)

func newCORSTestServer(origins []string) *Server {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewServer(
		config.ServerConfig{
			Host:         "localhost",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			CORS:         config.CORSConfig{AllowedOrigins: origins},
		},
		&mockCloudCoverService{},
		&mockHealthChecker{healthy: true, ready: true},
		logger,
	)
}

func TestCORSAllowedOrigin(t *testing.T) {
	srv := newCORSTestServer([]string{"https://example.com"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://example.com")
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	srv := newCORSTestServer([]string{"https://example.com"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.test")
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newCORSTestServer([]string{"https://example.com"})

	handler := srv.corsMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("preflight request reached the wrapped handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/cloud-cover", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestOriginAllowedWildcard(t *testing.T) {
	srv := newCORSTestServer([]string{"*.example.com"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://api.example.com", true},
		{"https://deep.sub.example.com", true},
		{"https://example.com", false},
		{"https://notexample.com", false},
		{"https://example.com.evil.test", false},
	}

	for _, tt := range tests {
		if got := srv.originAllowed(tt.origin); got != tt.want {
			t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
