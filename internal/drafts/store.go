// Package drafts persists pending-booking records across the payment redirect
// boundary. A draft is written when a deposit link is created and updated once
// the appointment exists, so a "paid but not yet booked" state is recoverable
// server-side instead of living only in the customer's browser tab.
package drafts

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/la-masion/booking-api/pkg/logging"
)

// Draft is one pending booking, keyed by the internal booking id.
type Draft struct {
	BookingID       string   `json:"booking_id"`
	ServiceID       string   `json:"service_id"`
	AddonIDs        []string `json:"addon_ids,omitempty"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Notes           string   `json:"notes,omitempty"`
	TotalDollars    int      `json:"total_dollars"`
	DepositCents    int      `json:"deposit_cents"`
	PaymentLinkID   string   `json:"payment_link_id,omitempty"`
	OrderID         string   `json:"order_id,omitempty"`
	SquareBookingID string   `json:"square_booking_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// ErrNotFound is returned when no draft exists for a booking id.
var ErrNotFound = errors.New("drafts: not found")

// Store is a redis-backed draft store with per-record TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	TLS      bool
	TTL      time.Duration
}

// NewStore connects to redis. Returns nil when no address is configured; the
// booking flow treats a nil store as "no server-side drafts" and keeps working.
func NewStore(opts Options, logger *logging.Logger) *Store {
	if opts.Addr == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	redisOpts := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
	}
	if opts.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &Store{
		client: redis.NewClient(redisOpts),
		ttl:    opts.TTL,
		logger: logger,
	}
}

// NewStoreWithClient wraps an existing redis client (tests use miniredis).
func NewStoreWithClient(client *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl, logger: logger}
}

func key(bookingID string) string {
	return "booking:draft:" + bookingID
}

// Put writes a draft with the store's TTL.
func (s *Store) Put(ctx context.Context, draft Draft) error {
	if draft.BookingID == "" {
		return fmt.Errorf("drafts: booking id required")
	}
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("drafts: marshal: %w", err)
	}
	if err := s.client.Set(ctx, key(draft.BookingID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("drafts: set: %w", err)
	}
	return nil
}

// Get returns the draft for a booking id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, bookingID string) (*Draft, error) {
	raw, err := s.client.Get(ctx, key(bookingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("drafts: get: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("drafts: unmarshal: %w", err)
	}
	return &draft, nil
}

// SetSquareBookingID attaches the external appointment id to an existing
// draft, preserving its remaining TTL. A missing draft is not an error; the
// record may have expired while the customer sat on the checkout page.
func (s *Store) SetSquareBookingID(ctx context.Context, bookingID, squareBookingID string) error {
	draft, err := s.Get(ctx, bookingID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	draft.SquareBookingID = squareBookingID

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("drafts: marshal: %w", err)
	}
	remaining, err := s.client.TTL(ctx, key(bookingID)).Result()
	if err != nil || remaining <= 0 {
		remaining = s.ttl
	}
	if err := s.client.Set(ctx, key(bookingID), payload, remaining).Err(); err != nil {
		return fmt.Errorf("drafts: set: %w", err)
	}
	return nil
}

// Ping verifies the redis connection at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
