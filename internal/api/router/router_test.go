package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/la-masion/booking-api/internal/booking"
	"github.com/la-masion/booking-api/internal/config"
)

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	svc := booking.NewService(nil, nil, nil, nil, booking.Options{}, nil)
	return New(cfg, booking.NewHandler(svc, nil), nil)
}

func TestHealthRoute(t *testing.T) {
	r := testRouter(t, &config.Config{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["ok"] != true {
		t.Errorf("ok = %v", body["ok"])
	}
}

func TestMetricsRoute(t *testing.T) {
	r := testRouter(t, &config.Config{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAdminRoutesRequireSecret(t *testing.T) {
	r := testRouter(t, &config.Config{SquareAdminSecret: "hunter2"})

	// Missing secret.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/bootstrap", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no secret: status = %d, want 401", rec.Code)
	}

	// Wrong secret.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bootstrap", nil)
	req.Header.Set("X-Admin-Secret", "wrong")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: status = %d, want 401", rec.Code)
	}
}

func TestAdminRoutesDisabledWithoutSecret(t *testing.T) {
	r := testRouter(t, &config.Config{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test/booking-alert", nil)
	req.Header.Set("X-Admin-Secret", "anything")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no secret is configured", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(t, &config.Config{CORSAllowedOrigins: []string{"https://lamasion.example"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/availability", nil)
	req.Header.Set("Origin", "https://lamasion.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://lamasion.example" {
		t.Errorf("allow-origin = %q", got)
	}
}
