package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/la-masion/booking-api/internal/catalog"
	"github.com/la-masion/booking-api/internal/drafts"
	"github.com/la-masion/booking-api/internal/notify"
	"github.com/la-masion/booking-api/internal/schedule"
	"github.com/la-masion/booking-api/internal/square"
)

// Appointment is the result of creating (or idempotently re-confirming) the
// Square appointment for a paid deposit.
type Appointment struct {
	BookingID       string
	SquareBookingID string
	Status          string
	LocationID      string
	StartAt         time.Time
	AlertSent       bool
}

// CreateAppointment creates the Square appointment after the deposit payment.
// The booking id doubles as the Square idempotency key, so a redirect-page
// refresh or a retried request cannot double-book; the draft-store check on
// top of that is an advisory fast path.
func (s *Service) CreateAppointment(ctx context.Context, req BookingRequest) (*Appointment, error) {
	treatment, err := req.validate()
	if err != nil {
		s.metrics.ObserveAppointment("invalid")
		return nil, err
	}
	// Direct bookings skip the deposit step and arrive without an id; mint
	// one so the idempotency-key contract still holds for their retries.
	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID == "" {
		bookingID = uuid.NewString()
	}
	addOns := catalog.AddOnsByIDs(req.AddonIDs)

	if s.store != nil {
		draft, err := s.store.Get(ctx, bookingID)
		if err != nil && !errors.Is(err, drafts.ErrNotFound) {
			s.logger.Warn("draft lookup failed", "booking_id", bookingID, "error", err)
		}
		if draft != nil && draft.SquareBookingID != "" {
			s.logger.Info("appointment already exists for booking, returning it",
				"booking_id", bookingID, "square_booking_id", draft.SquareBookingID)
			s.metrics.ObserveAppointment("duplicate")
			return &Appointment{
				BookingID:       bookingID,
				SquareBookingID: draft.SquareBookingID,
				AlertSent:       false,
			}, nil
		}
	}

	location, err := s.sq.ResolveLocation(ctx, s.opts.LocationID)
	if err != nil {
		s.metrics.ObserveAppointment("error")
		return nil, err
	}
	loc := schedule.LoadLocation(location.Timezone)

	startAt, err := schedule.ParseStartAt(req.Date, req.Time, loc)
	if err != nil {
		s.metrics.ObserveAppointment("invalid")
		return nil, validationErrorf("Invalid date or time")
	}

	variation, err := s.resolveServiceVariation(ctx, treatment)
	if err != nil {
		s.metrics.ObserveAppointment("error")
		return nil, err
	}

	teamMemberID, err := s.sq.ResolveTeamMemberID(ctx, location.ID, s.opts.TeamMemberID)
	if err != nil {
		s.metrics.ObserveAppointment("error")
		return nil, err
	}

	customer, err := s.resolveOrCreateCustomer(ctx, req)
	if err != nil {
		s.metrics.ObserveAppointment("error")
		return nil, err
	}

	durationMinutes, err := treatment.DurationMinutes()
	if err != nil {
		s.metrics.ObserveAppointment("error")
		return nil, configurationErrorf(err.Error())
	}

	sellerNote := "Booking ID: " + bookingID
	if len(addOns) > 0 {
		sellerNote += " | Add-ons: " + strings.Join(addOnNames(addOns), ", ")
	}

	created, err := s.sq.CreateBooking(ctx, bookingID, square.Booking{
		StartAt:      startAt.UTC().Format(time.RFC3339),
		LocationID:   location.ID,
		CustomerID:   customer.ID,
		CustomerNote: strings.TrimSpace(req.Notes),
		SellerNote:   sellerNote,
		AppointmentSegments: []square.AppointmentSegment{{
			DurationMinutes:         durationMinutes,
			TeamMemberID:            teamMemberID,
			ServiceVariationID:      variation.ID,
			ServiceVariationVersion: variation.Version,
		}},
	})
	if err != nil {
		s.metrics.ObserveAppointment("error")
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SetSquareBookingID(ctx, bookingID, created.ID); err != nil {
			s.logger.Warn("failed to mark draft completed", "booking_id", bookingID, "error", err)
		}
	}

	alertSent := s.dispatchAlert(ctx, notify.BookingAlert{
		BookingID:           bookingID,
		SquareBookingID:     created.ID,
		SquareBookingStatus: created.Status,
		LocationID:          location.ID,
		Timezone:            location.Timezone,
		StartAtUTC:          startAt.UTC(),
		CreatedAtUTC:        s.now().UTC(),
		ServiceName:         treatment.Name,
		AddonNames:          addOnNames(addOns),
		TotalDollars:        mustTotalDollars(treatment, addOns),
		DepositCents:        s.DepositCents(mustTotalDollars(treatment, addOns)),
		Currency:            s.opts.Currency,
		FirstName:           strings.TrimSpace(req.FirstName),
		LastName:            strings.TrimSpace(req.LastName),
		Email:               strings.TrimSpace(req.Email),
		Phone:               strings.TrimSpace(req.Phone),
		Notes:               strings.TrimSpace(req.Notes),
	})

	s.metrics.ObserveAppointment("created")
	s.logger.Info("appointment created",
		"booking_id", bookingID,
		"square_booking_id", created.ID,
		"status", created.Status,
		"start_at", startAt.UTC().Format(time.RFC3339),
		"alert_sent", alertSent,
	)

	return &Appointment{
		BookingID:       bookingID,
		SquareBookingID: created.ID,
		Status:          created.Status,
		LocationID:      location.ID,
		StartAt:         startAt,
		AlertSent:       alertSent,
	}, nil
}

func mustTotalDollars(treatment *catalog.Treatment, addOns []catalog.AddOn) int {
	total, err := ComputeTotalDollars(treatment, addOns)
	if err != nil {
		return 0
	}
	return total
}

// resolveServiceVariation finds the Square catalog variation to book for a
// treatment. The configured id map wins when its entry still checks out
// against the live catalog; a stale or missing entry logs a warning and falls
// through to a name search.
func (s *Service) resolveServiceVariation(ctx context.Context, treatment *catalog.Treatment) (*square.CatalogObject, error) {
	if mappedID := s.opts.VariationMap[treatment.ID]; mappedID != "" {
		obj, err := s.sq.GetCatalogObject(ctx, mappedID)
		if err == nil && obj != nil && obj.Type == "ITEM_VARIATION" && obj.Version > 0 {
			return obj, nil
		}
		s.logger.Warn("configured variation mapping is stale, falling back to catalog search",
			"service_id", treatment.ID, "variation_id", mappedID, "error", err)
	}

	keywords := strings.Fields(treatment.Name)
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	result, err := s.sq.SearchCatalog(ctx, []string{"ITEM", "ITEM_VARIATION"}, keywords, "", 100)
	if err != nil {
		return nil, err
	}

	appointmentItems := make(map[string]bool)
	for _, obj := range append(result.Objects, result.RelatedObjects...) {
		if obj.Type == "ITEM" && obj.ItemData != nil && obj.ItemData.ProductType == "APPOINTMENTS_SERVICE" {
			appointmentItems[obj.ID] = true
		}
	}
	for i := range result.Objects {
		obj := &result.Objects[i]
		if obj.Type != "ITEM_VARIATION" || obj.ItemVariationData == nil {
			continue
		}
		if appointmentItems[obj.ItemVariationData.ItemID] {
			return obj, nil
		}
	}
	return nil, notFoundErrorf(fmt.Sprintf("No bookable catalog service found for %q", treatment.Name))
}

// resolveOrCreateCustomer finds the customer by exact email, creating the
// record when absent. An unnormalizable phone number is dropped, not fatal.
func (s *Service) resolveOrCreateCustomer(ctx context.Context, req BookingRequest) (*square.Customer, error) {
	email := strings.TrimSpace(req.Email)
	existing, err := s.sq.SearchCustomerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.sq.CreateCustomer(ctx, square.Customer{
		GivenName:    strings.TrimSpace(req.FirstName),
		FamilyName:   strings.TrimSpace(req.LastName),
		EmailAddress: email,
		PhoneNumber:  NormalizePhone(req.Phone, s.opts.DefaultCountryCode),
	})
}

// dispatchAlert sends the staff alert on a detached goroutine and waits up to
// AlertWait for the outcome. A slow send keeps running after the request
// returns; the response then reports alertSent=false even if the email later
// lands. Alert failure never unwinds the booking.
func (s *Service) dispatchAlert(ctx context.Context, alert notify.BookingAlert) bool {
	if s.alerts == nil {
		return false
	}

	done := make(chan error, 1)
	go func() {
		// Detached from the request context: the alert should finish even
		// if the client disconnects right after booking.
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		err := s.alerts.SendBookingAlert(sendCtx, alert)
		if err != nil {
			s.logger.Warn("booking alert failed", "booking_id", alert.BookingID, "error", err)
			s.metrics.ObserveAlert("error")
		} else {
			s.metrics.ObserveAlert("sent")
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(s.opts.AlertWait):
		s.logger.Warn("booking alert still in flight, responding without it", "booking_id", alert.BookingID)
		return false
	}
}
