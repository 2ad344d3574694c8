// Package booking orchestrates the end-to-end booking flow: availability
// computation against the Square scheduler, deposit payment-link creation,
// and idempotent appointment creation with customer and catalog-variation
// resolution. All hard state lives on the Square side; this package is
// sequencing, validation, and fallback resolution.
package booking

import (
	"context"
	"time"

	"github.com/la-masion/booking-api/internal/drafts"
	"github.com/la-masion/booking-api/internal/notify"
	"github.com/la-masion/booking-api/internal/observability/metrics"
	"github.com/la-masion/booking-api/internal/square"
	"github.com/la-masion/booking-api/pkg/logging"
)

// SquareAPI is the slice of the Square client the booking flow uses.
type SquareAPI interface {
	ListLocations(ctx context.Context) ([]square.Location, error)
	ResolveLocation(ctx context.Context, configuredID string) (*square.Location, error)
	ListTeamMemberProfiles(ctx context.Context, locationID string, bookableOnly bool) ([]square.TeamMemberProfile, error)
	ResolveTeamMemberID(ctx context.Context, locationID, configuredID string) (string, error)
	ListBookings(ctx context.Context, locationID, teamMemberID string, startMin, startMax time.Time) ([]square.Booking, error)
	CreateBooking(ctx context.Context, idempotencyKey string, booking square.Booking) (*square.Booking, error)
	GetCatalogObject(ctx context.Context, objectID string) (*square.CatalogObject, error)
	SearchCatalog(ctx context.Context, objectTypes, keywords []string, cursor string, limit int) (*square.CatalogSearchResult, error)
	BatchUpsertCatalog(ctx context.Context, idempotencyKey string, objects []map[string]any) (*square.BatchUpsertResult, error)
	SearchCustomerByEmail(ctx context.Context, email string) (*square.Customer, error)
	CreateCustomer(ctx context.Context, customer square.Customer) (*square.Customer, error)
	CreatePaymentLink(ctx context.Context, params square.PaymentLinkParams) (*square.PaymentLink, error)
}

// DraftStore persists pending bookings across the payment redirect.
type DraftStore interface {
	Put(ctx context.Context, draft drafts.Draft) error
	Get(ctx context.Context, bookingID string) (*drafts.Draft, error)
	SetSquareBookingID(ctx context.Context, bookingID, squareBookingID string) error
}

// AlertSender dispatches the staff booking alert.
type AlertSender interface {
	SendBookingAlert(ctx context.Context, alert notify.BookingAlert) error
}

// Options carries the operator configuration the orchestrator needs.
type Options struct {
	LocationID         string            // override; empty resolves via Square
	TeamMemberID       string            // override; empty resolves via Square
	VariationMap       map[string]string // service id -> catalog variation id
	Currency           string
	ForcedDepositCents int // testing override; <=0 means percentage deposit
	DefaultCountryCode string
	PublicBaseURL      string // for the checkout redirect URL

	// AlertWait bounds how long a request waits to learn the alert outcome
	// before reporting alertSent=false and letting the send finish behind it.
	AlertWait time.Duration
}

// Service is the booking orchestrator.
type Service struct {
	sq      SquareAPI
	store   DraftStore // may be nil; drafts then live only client-side
	alerts  AlertSender
	metrics *metrics.BookingMetrics
	opts    Options
	logger  *logging.Logger

	now func() time.Time
}

// NewService creates the orchestrator.
func NewService(sq SquareAPI, store DraftStore, alerts AlertSender, m *metrics.BookingMetrics, opts Options, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Currency == "" {
		opts.Currency = "AUD"
	}
	if opts.DefaultCountryCode == "" {
		opts.DefaultCountryCode = "+61"
	}
	if opts.AlertWait <= 0 {
		opts.AlertWait = 3 * time.Second
	}
	return &Service{
		sq:      sq,
		store:   store,
		alerts:  alerts,
		metrics: m,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}
