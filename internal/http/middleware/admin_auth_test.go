package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminSecret(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid secret passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bootstrap", nil)
		req.Header.Set("X-Admin-Secret", "s3cret")
		rr := httptest.NewRecorder()
		AdminSecret("s3cret")(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bootstrap", nil)
		req.Header.Set("X-Admin-Secret", "wrong")
		rr := httptest.NewRecorder()
		AdminSecret("s3cret")(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bootstrap", nil)
		rr := httptest.NewRecorder()
		AdminSecret("s3cret")(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("unconfigured secret disables endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bootstrap", nil)
		req.Header.Set("X-Admin-Secret", "")
		rr := httptest.NewRecorder()
		AdminSecret("")(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})
}
