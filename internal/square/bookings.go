package square

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// ListBookings returns all bookings for a team member at a location whose
// start falls within [startMin, startMax), following pagination cursors.
func (c *Client) ListBookings(ctx context.Context, locationID, teamMemberID string, startMin, startMax time.Time) ([]Booking, error) {
	var bookings []Booking
	cursor := ""
	for {
		q := url.Values{}
		q.Set("location_id", locationID)
		if teamMemberID != "" {
			q.Set("team_member_id", teamMemberID)
		}
		q.Set("start_at_min", startMin.UTC().Format(time.RFC3339))
		q.Set("start_at_max", startMax.UTC().Format(time.RFC3339))
		q.Set("limit", "200")
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		var out struct {
			Bookings []Booking `json:"bookings"`
			Cursor   string    `json:"cursor"`
		}
		if err := c.do(ctx, "bookings.list", http.MethodGet, "/v2/bookings?"+q.Encode(), nil, &out); err != nil {
			return nil, err
		}
		bookings = append(bookings, out.Bookings...)
		if out.Cursor == "" {
			return bookings, nil
		}
		cursor = out.Cursor
	}
}

// CreateBooking creates an appointment. The idempotency key guarantees
// at-most-one booking per key across client retries; this is the correctness
// mechanism for the whole flow, not the caller's local duplicate checks.
func (c *Client) CreateBooking(ctx context.Context, idempotencyKey string, booking Booking) (*Booking, error) {
	body := struct {
		IdempotencyKey string  `json:"idempotency_key"`
		Booking        Booking `json:"booking"`
	}{IdempotencyKey: idempotencyKey, Booking: booking}

	var out struct {
		Booking Booking `json:"booking"`
	}
	if err := c.do(ctx, "bookings.create", http.MethodPost, "/v2/bookings", body, &out); err != nil {
		return nil, err
	}
	return &out.Booking, nil
}
