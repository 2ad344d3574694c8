package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/la-masion/booking-api/internal/catalog"
	"github.com/la-masion/booking-api/internal/drafts"
	"github.com/la-masion/booking-api/internal/schedule"
	"github.com/la-masion/booking-api/internal/square"
)

// BookingRequest is the customer-facing booking payload, shared by the
// deposit-link and appointment-creation operations.
type BookingRequest struct {
	ServiceID string   `json:"serviceId"`
	AddonIDs  []string `json:"addonIds"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Notes     string   `json:"notes"`

	// BookingID is set on appointment creation (it came back from the
	// deposit step); ignored when creating a deposit link.
	BookingID string `json:"bookingId"`
}

// DepositLink is the result of creating a hosted deposit checkout.
type DepositLink struct {
	BookingID     string
	URL           string
	PaymentLinkID string
	OrderID       string
	DepositCents  int
	TotalDollars  int
	ServiceName   string
}

func (r *BookingRequest) validate() (*catalog.Treatment, error) {
	treatment := catalog.TreatmentByID(strings.TrimSpace(r.ServiceID))
	if treatment == nil {
		return nil, validationErrorf("Invalid serviceId")
	}
	if !schedule.ValidDate(r.Date) {
		return nil, validationErrorf("Missing or invalid date")
	}
	if _, ok := schedule.ParseTimeLabel(r.Time); !ok {
		return nil, validationErrorf("Missing or invalid time")
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return nil, validationErrorf("Missing customer name")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErrorf("Missing or invalid email")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return nil, validationErrorf("Missing phone")
	}
	return treatment, nil
}

// bookingDetailsNote is the durable staff-visible summary attached to the
// payment link's order line. It is the recovery breadcrumb for a paid deposit
// whose appointment never got created.
func bookingDetailsNote(req BookingRequest, addOns []catalog.AddOn, bookingID string) string {
	parts := []string{
		fmt.Sprintf("Requested: %s %s", req.Date, req.Time),
		fmt.Sprintf("Customer: %s %s", strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)),
		"Email: " + strings.TrimSpace(req.Email),
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		parts = append(parts, "Phone: "+phone)
	}
	if len(addOns) > 0 {
		parts = append(parts, "Add-ons: "+strings.Join(addOnNames(addOns), ", "))
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		parts = append(parts, "Notes: "+notes)
	}
	parts = append(parts, "Booking ID: "+bookingID)
	return strings.Join(parts, " | ")
}

func addOnNames(addOns []catalog.AddOn) []string {
	names := make([]string, 0, len(addOns))
	for _, a := range addOns {
		names = append(names, a.Name)
	}
	return names
}

// CreateDepositLink prices the booking, creates the hosted checkout for the
// deposit, and persists a pending draft so the booking survives the payment
// redirect even if the customer's session does not.
func (s *Service) CreateDepositLink(ctx context.Context, req BookingRequest) (*DepositLink, error) {
	treatment, err := req.validate()
	if err != nil {
		return nil, err
	}
	addOns := catalog.AddOnsByIDs(req.AddonIDs)

	totalDollars, err := ComputeTotalDollars(treatment, addOns)
	if err != nil {
		return nil, configurationErrorf(err.Error())
	}
	depositCents := s.DepositCents(totalDollars)

	// Reuse a client-supplied booking id so a retried deposit step stays
	// correlated; mint a fresh one otherwise.
	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID == "" {
		bookingID = uuid.NewString()
	}

	location, err := s.sq.ResolveLocation(ctx, s.opts.LocationID)
	if err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(req.FirstName)
	ticketName := fmt.Sprintf("%s — %s %s", firstName, req.Date, req.Time)
	lineItemName := fmt.Sprintf("Deposit (20%%) — %s", treatment.Name)

	link, err := s.sq.CreatePaymentLink(ctx, square.PaymentLinkParams{
		IdempotencyKey: bookingID,
		Description:    fmt.Sprintf("Booking deposit (20%%) — %s", treatment.Name),
		Order: square.Order{
			LocationID:  location.ID,
			ReferenceID: bookingID,
			TicketName:  ticketName,
			LineItems: []square.OrderLineItem{{
				Name:     lineItemName,
				Quantity: "1",
				BasePriceMoney: square.Money{
					Amount:   int64(depositCents),
					Currency: s.opts.Currency,
				},
				Note: bookingDetailsNote(req, addOns, bookingID),
			}},
		},
		CheckoutOptions: square.CheckoutOptions{
			RedirectURL: checkoutRedirectURL(s.opts.PublicBaseURL),
		},
		PaymentNote: bookingDetailsNote(req, addOns, bookingID),
	})
	if err != nil {
		s.metrics.ObserveDepositLink("error")
		return nil, err
	}
	if link == nil || link.URL == "" {
		s.metrics.ObserveDepositLink("error")
		return nil, &square.APIError{StatusCode: 502, Body: "payment link response carried no checkout URL"}
	}

	if s.store != nil {
		draft := drafts.Draft{
			BookingID:     bookingID,
			ServiceID:     treatment.ID,
			AddonIDs:      req.AddonIDs,
			Date:          req.Date,
			Time:          req.Time,
			FirstName:     firstName,
			LastName:      strings.TrimSpace(req.LastName),
			Email:         strings.TrimSpace(req.Email),
			Phone:         strings.TrimSpace(req.Phone),
			Notes:         strings.TrimSpace(req.Notes),
			TotalDollars:  totalDollars,
			DepositCents:  depositCents,
			PaymentLinkID: link.ID,
			OrderID:       link.OrderID,
			CreatedAt:     s.now().UTC().Format(time.RFC3339),
		}
		if err := s.store.Put(ctx, draft); err != nil {
			// The draft is the recovery mechanism, not the source of truth;
			// the customer still has a valid checkout link.
			s.logger.Warn("failed to persist booking draft", "booking_id", bookingID, "error", err)
		}
	}

	s.metrics.ObserveDepositLink("created")
	s.logger.Info("deposit link created",
		"booking_id", bookingID,
		"service_id", treatment.ID,
		"deposit_cents", depositCents,
		"order_id", link.OrderID,
	)

	return &DepositLink{
		BookingID:     bookingID,
		URL:           link.URL,
		PaymentLinkID: link.ID,
		OrderID:       link.OrderID,
		DepositCents:  depositCents,
		TotalDollars:  totalDollars,
		ServiceName:   treatment.Name,
	}, nil
}

func checkoutRedirectURL(publicBaseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	if base == "" {
		return ""
	}
	return base + "/booking/success"
}
