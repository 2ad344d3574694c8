package booking

import (
	"context"
	"sync"
	"time"

	"github.com/la-masion/booking-api/internal/drafts"
	"github.com/la-masion/booking-api/internal/notify"
	"github.com/la-masion/booking-api/internal/square"
)

// stubSquare is a function-field stub of the Square client. Unset fields
// return sensible sandbox-like defaults.
type stubSquare struct {
	listLocations         func(ctx context.Context) ([]square.Location, error)
	resolveLocation       func(ctx context.Context, configuredID string) (*square.Location, error)
	listTeamMembers       func(ctx context.Context, locationID string, bookableOnly bool) ([]square.TeamMemberProfile, error)
	resolveTeamMemberID   func(ctx context.Context, locationID, configuredID string) (string, error)
	listBookings          func(ctx context.Context, locationID, teamMemberID string, startMin, startMax time.Time) ([]square.Booking, error)
	createBooking         func(ctx context.Context, idempotencyKey string, booking square.Booking) (*square.Booking, error)
	getCatalogObject      func(ctx context.Context, objectID string) (*square.CatalogObject, error)
	searchCatalog         func(ctx context.Context, objectTypes, keywords []string, cursor string, limit int) (*square.CatalogSearchResult, error)
	batchUpsertCatalog    func(ctx context.Context, idempotencyKey string, objects []map[string]any) (*square.BatchUpsertResult, error)
	searchCustomerByEmail func(ctx context.Context, email string) (*square.Customer, error)
	createCustomer        func(ctx context.Context, customer square.Customer) (*square.Customer, error)
	createPaymentLink     func(ctx context.Context, params square.PaymentLinkParams) (*square.PaymentLink, error)

	mu              sync.Mutex
	createdBookings []square.Booking
	idempotencyKeys []string
}

func (s *stubSquare) ListLocations(ctx context.Context) ([]square.Location, error) {
	if s.listLocations != nil {
		return s.listLocations(ctx)
	}
	return []square.Location{{ID: "LOC1", Name: "La Masion", Status: "ACTIVE", Timezone: "Australia/Sydney", Currency: "AUD"}}, nil
}

func (s *stubSquare) ResolveLocation(ctx context.Context, configuredID string) (*square.Location, error) {
	if s.resolveLocation != nil {
		return s.resolveLocation(ctx, configuredID)
	}
	return &square.Location{ID: "LOC1", Name: "La Masion", Status: "ACTIVE", Timezone: "Australia/Sydney", Currency: "AUD"}, nil
}

func (s *stubSquare) ListTeamMemberProfiles(ctx context.Context, locationID string, bookableOnly bool) ([]square.TeamMemberProfile, error) {
	if s.listTeamMembers != nil {
		return s.listTeamMembers(ctx, locationID, bookableOnly)
	}
	return []square.TeamMemberProfile{{TeamMemberID: "TM1", DisplayName: "Therapist", IsBookable: true}}, nil
}

func (s *stubSquare) ResolveTeamMemberID(ctx context.Context, locationID, configuredID string) (string, error) {
	if s.resolveTeamMemberID != nil {
		return s.resolveTeamMemberID(ctx, locationID, configuredID)
	}
	if configuredID != "" {
		return configuredID, nil
	}
	return "TM1", nil
}

func (s *stubSquare) ListBookings(ctx context.Context, locationID, teamMemberID string, startMin, startMax time.Time) ([]square.Booking, error) {
	if s.listBookings != nil {
		return s.listBookings(ctx, locationID, teamMemberID, startMin, startMax)
	}
	return nil, nil
}

func (s *stubSquare) CreateBooking(ctx context.Context, idempotencyKey string, booking square.Booking) (*square.Booking, error) {
	s.mu.Lock()
	s.createdBookings = append(s.createdBookings, booking)
	s.idempotencyKeys = append(s.idempotencyKeys, idempotencyKey)
	s.mu.Unlock()
	if s.createBooking != nil {
		return s.createBooking(ctx, idempotencyKey, booking)
	}
	created := booking
	created.ID = "SQB1"
	created.Status = "ACCEPTED"
	return &created, nil
}

func (s *stubSquare) GetCatalogObject(ctx context.Context, objectID string) (*square.CatalogObject, error) {
	if s.getCatalogObject != nil {
		return s.getCatalogObject(ctx, objectID)
	}
	return &square.CatalogObject{
		ID:      objectID,
		Type:    "ITEM_VARIATION",
		Version: 7,
		ItemVariationData: &square.ItemVariationData{
			ItemID: "ITEM1",
			Name:   "Standard",
		},
	}, nil
}

func (s *stubSquare) SearchCatalog(ctx context.Context, objectTypes, keywords []string, cursor string, limit int) (*square.CatalogSearchResult, error) {
	if s.searchCatalog != nil {
		return s.searchCatalog(ctx, objectTypes, keywords, cursor, limit)
	}
	return &square.CatalogSearchResult{
		Objects: []square.CatalogObject{{
			ID:                "VAR1",
			Type:              "ITEM_VARIATION",
			Version:           7,
			ItemVariationData: &square.ItemVariationData{ItemID: "ITEM1", Name: "Standard"},
		}},
		RelatedObjects: []square.CatalogObject{{
			ID:       "ITEM1",
			Type:     "ITEM",
			ItemData: &square.ItemData{Name: "Signature Head Spa", ProductType: "APPOINTMENTS_SERVICE"},
		}},
	}, nil
}

func (s *stubSquare) BatchUpsertCatalog(ctx context.Context, idempotencyKey string, objects []map[string]any) (*square.BatchUpsertResult, error) {
	if s.batchUpsertCatalog != nil {
		return s.batchUpsertCatalog(ctx, idempotencyKey, objects)
	}
	return &square.BatchUpsertResult{}, nil
}

func (s *stubSquare) SearchCustomerByEmail(ctx context.Context, email string) (*square.Customer, error) {
	if s.searchCustomerByEmail != nil {
		return s.searchCustomerByEmail(ctx, email)
	}
	return nil, nil
}

func (s *stubSquare) CreateCustomer(ctx context.Context, customer square.Customer) (*square.Customer, error) {
	if s.createCustomer != nil {
		return s.createCustomer(ctx, customer)
	}
	created := customer
	created.ID = "CUST1"
	return &created, nil
}

func (s *stubSquare) CreatePaymentLink(ctx context.Context, params square.PaymentLinkParams) (*square.PaymentLink, error) {
	if s.createPaymentLink != nil {
		return s.createPaymentLink(ctx, params)
	}
	return &square.PaymentLink{ID: "PL1", URL: "https://checkout.example/pay", OrderID: "ORD1"}, nil
}

// memoryDrafts is an in-memory DraftStore for tests.
type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]drafts.Draft
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: make(map[string]drafts.Draft)}
}

func (m *memoryDrafts) Put(ctx context.Context, draft drafts.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draft.BookingID] = draft
	return nil
}

func (m *memoryDrafts) Get(ctx context.Context, bookingID string) (*drafts.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[bookingID]
	if !ok {
		return nil, drafts.ErrNotFound
	}
	return &draft, nil
}

func (m *memoryDrafts) SetSquareBookingID(ctx context.Context, bookingID, squareBookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[bookingID]
	if !ok {
		return nil
	}
	draft.SquareBookingID = squareBookingID
	m.drafts[bookingID] = draft
	return nil
}

// stubAlerts records sent alerts; err, when set, is returned from every send.
type stubAlerts struct {
	mu     sync.Mutex
	alerts []notify.BookingAlert
	err    error
}

func (s *stubAlerts) SendBookingAlert(ctx context.Context, alert notify.BookingAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.alerts = append(s.alerts, alert)
	return nil
}

func newTestService(sq SquareAPI, store DraftStore, alerts AlertSender, opts Options) *Service {
	return NewService(sq, store, alerts, nil, opts, nil)
}
