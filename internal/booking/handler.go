package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/la-masion/booking-api/internal/catalog"
	"github.com/la-masion/booking-api/internal/notify"
	"github.com/la-masion/booking-api/pkg/logging"
)

// Handler exposes the booking flow over HTTP. Every response is a JSON object
// with an "ok" flag; errors carry a single "error" message string.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates the HTTP handler set for the booking service.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
}

// Availability handles GET /availability?date=YYYY-MM-DD&serviceId=...
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.svc.BlockedSlots(r.Context(), q.Get("date"), q.Get("serviceId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"date":         result.Date,
		"timezone":     result.Timezone,
		"locationId":   result.LocationID,
		"teamMemberId": result.TeamMemberID,
		"blockedTimes": result.BlockedTimes,
	})
}

// DepositLink handles POST /deposit-link.
func (h *Handler) DepositLink(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, validationErrorf("Invalid JSON body"))
		return
	}
	link, err := h.svc.CreateDepositLink(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":            true,
		"url":           link.URL,
		"paymentLinkId": link.PaymentLinkID,
		"orderId":       link.OrderID,
		"depositCents":  link.DepositCents,
		"totalDollars":  link.TotalDollars,
		"serviceName":   link.ServiceName,
		"bookingId":     link.BookingID,
	})
}

// CreateAppointment handles POST /appointments/create.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, validationErrorf("Invalid JSON body"))
		return
	}
	appt, err := h.svc.CreateAppointment(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	payload := map[string]any{
		"ok":              true,
		"bookingId":       appt.BookingID,
		"squareBookingId": appt.SquareBookingID,
		"alertSent":       appt.AlertSent,
	}
	if appt.LocationID != "" {
		payload["locationId"] = appt.LocationID
	}
	if !appt.StartAt.IsZero() {
		payload["startAt"] = appt.StartAt.UTC().Format(time.RFC3339)
	}
	if appt.Status != "" {
		payload["status"] = appt.Status
	}
	writeJSON(w, http.StatusOK, payload)
}

// Locations handles GET /locations.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.svc.sq.ListLocations(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "locations": locations})
}

// TeamMembers handles GET /team-members.
func (h *Handler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	location, err := h.svc.sq.ResolveLocation(r.Context(), h.svc.opts.LocationID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	profiles, err := h.svc.sq.ListTeamMemberProfiles(r.Context(), location.ID, true)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"locationId":  location.ID,
		"teamMembers": profiles,
	})
}

// Services handles GET /services?q=&all=. It mirrors the Square catalog's
// service variations so operators can assemble the variation map.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeAll := q.Get("all") == "true" || q.Get("all") == "1"
	services, err := h.svc.ListServiceVariations(r.Context(), q.Get("q"), includeAll)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "services": services})
}

// Bootstrap handles POST /bootstrap (admin gated).
func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.BootstrapCatalog(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"locationId":   result.LocationID,
		"teamMemberId": result.TeamMemberID,
		"mapping":      result.Mapping,
	})
}

// TestBookingAlert handles POST /test/booking-alert (admin gated). It pushes
// a canned alert through the real email path for smoke testing.
func (h *Handler) TestBookingAlert(w http.ResponseWriter, r *http.Request) {
	sent, err := h.svc.SendTestAlert(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "alertSent": sent})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "healthy"})
}

// SendTestAlert sends a canned booking alert through the configured email
// path. It reports delivery failures as errors rather than a flag, since the
// whole point of the endpoint is diagnosing that path.
func (s *Service) SendTestAlert(ctx context.Context) (bool, error) {
	if s.alerts == nil {
		return false, configurationErrorf("booking alerts are not configured")
	}
	treatment := &catalog.Treatments[0]
	now := s.now().UTC()
	alert := notify.BookingAlert{
		BookingID:           "test-" + now.Format("20060102150405"),
		SquareBookingStatus: "ACCEPTED",
		Timezone:            "UTC",
		StartAtUTC:          now.Add(24 * time.Hour),
		CreatedAtUTC:        now,
		ServiceName:         treatment.Name,
		TotalDollars:        mustTotalDollars(treatment, nil),
		DepositCents:        s.DepositCents(mustTotalDollars(treatment, nil)),
		Currency:            s.opts.Currency,
		FirstName:           "Test",
		LastName:            "Booking",
		Email:               "test@example.com",
		Phone:               "+61400000000",
		Notes:               "This is a test alert.",
	}
	if err := s.alerts.SendBookingAlert(ctx, alert); err != nil {
		return false, err
	}
	return true, nil
}
