package booking

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/la-masion/booking-api/internal/square"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v: %s", err, rec.Body.String())
	}
	return body
}

func TestAvailabilityHandler(t *testing.T) {
	h := NewHandler(newTestService(&stubSquare{}, nil, nil, Options{}), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/availability?date=2026-09-15&serviceId=signature-head-spa", nil)
	h.Availability(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["ok"] != true {
		t.Errorf("ok = %v", body["ok"])
	}
	if body["timezone"] != "Australia/Sydney" {
		t.Errorf("timezone = %v", body["timezone"])
	}
	if _, ok := body["blockedTimes"].([]any); !ok {
		t.Errorf("blockedTimes missing or wrong type: %v", body["blockedTimes"])
	}
}

func TestAvailabilityHandlerValidation(t *testing.T) {
	h := NewHandler(newTestService(&stubSquare{}, nil, nil, Options{}), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/availability?date=bogus&serviceId=signature-head-spa", nil)
	h.Availability(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["ok"] != false || body["error"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestDepositLinkHandler(t *testing.T) {
	h := NewHandler(newTestService(&stubSquare{}, newMemoryDrafts(), nil, Options{}), nil)

	payload := `{"serviceId":"express-refresh","date":"2026-09-15","time":"2:00 PM","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","phone":"0412345678"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/deposit-link", strings.NewReader(payload))
	h.DepositLink(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["url"] != "https://checkout.example/pay" {
		t.Errorf("url = %v", body["url"])
	}
	if body["depositCents"] != float64(1900) || body["totalDollars"] != float64(95) {
		t.Errorf("amounts = %v / %v", body["depositCents"], body["totalDollars"])
	}
	if body["bookingId"] == "" {
		t.Error("expected a bookingId")
	}
}

func TestDepositLinkHandlerBadJSON(t *testing.T) {
	h := NewHandler(newTestService(&stubSquare{}, nil, nil, Options{}), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/deposit-link", strings.NewReader("{nope"))
	h.DepositLink(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateAppointmentHandler(t *testing.T) {
	h := NewHandler(newTestService(&stubSquare{}, newMemoryDrafts(), &stubAlerts{}, Options{}), nil)

	payload := `{"bookingId":"bk-1","serviceId":"signature-head-spa","date":"2026-09-15","time":"10:00 AM","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","phone":"0412345678"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/appointments/create", strings.NewReader(payload))
	h.CreateAppointment(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["squareBookingId"] != "SQB1" {
		t.Errorf("squareBookingId = %v", body["squareBookingId"])
	}
	if body["alertSent"] != true {
		t.Errorf("alertSent = %v", body["alertSent"])
	}
}

func TestProviderErrorsMapTo502(t *testing.T) {
	sq := &stubSquare{
		resolveLocation: func(ctx context.Context, configuredID string) (*square.Location, error) {
			return nil, &square.APIError{StatusCode: 401, Body: "unauthorized"}
		},
	}
	h := NewHandler(newTestService(sq, nil, nil, Options{}), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/availability?date=2026-09-15&serviceId=signature-head-spa", nil)
	h.Availability(rec, req)

	if rec.Code != 502 {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewHandler(newTestService(&stubSquare{}, nil, nil, Options{}), nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
}
