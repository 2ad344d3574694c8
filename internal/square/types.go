package square

// Location is a Square business location.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

// TeamMemberProfile is a bookable staff profile at a location.
type TeamMemberProfile struct {
	TeamMemberID string `json:"team_member_id"`
	DisplayName  string `json:"display_name"`
	IsBookable   bool   `json:"is_bookable"`
}

// AppointmentSegment is one service segment of a booking.
type AppointmentSegment struct {
	DurationMinutes         int    `json:"duration_minutes,omitempty"`
	IntermissionMinutes     int    `json:"intermission_minutes,omitempty"`
	TeamMemberID            string `json:"team_member_id,omitempty"`
	ServiceVariationID      string `json:"service_variation_id,omitempty"`
	ServiceVariationVersion int64  `json:"service_variation_version,omitempty"`
}

// Booking is a Square appointment record.
type Booking struct {
	ID                    string               `json:"id,omitempty"`
	Status                string               `json:"status,omitempty"`
	StartAt               string               `json:"start_at,omitempty"` // RFC 3339
	LocationID            string               `json:"location_id,omitempty"`
	CustomerID            string               `json:"customer_id,omitempty"`
	CustomerNote          string               `json:"customer_note,omitempty"`
	SellerNote            string               `json:"seller_note,omitempty"`
	TransitionTimeMinutes int                  `json:"transition_time_minutes,omitempty"`
	AppointmentSegments   []AppointmentSegment `json:"appointment_segments,omitempty"`
}

// Money is an amount in minor currency units.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CatalogObject is the subset of Square's catalog object model the booking
// flow reads: items and their variations.
type CatalogObject struct {
	ID                string             `json:"id"`
	Type              string             `json:"type"`
	Version           int64              `json:"version,omitempty"`
	ItemData          *ItemData          `json:"item_data,omitempty"`
	ItemVariationData *ItemVariationData `json:"item_variation_data,omitempty"`
}

// ItemData is catalog data for a type=ITEM object.
type ItemData struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ProductType string `json:"product_type,omitempty"`
}

// ItemVariationData is catalog data for a type=ITEM_VARIATION object.
type ItemVariationData struct {
	ItemID              string   `json:"item_id,omitempty"`
	Name                string   `json:"name,omitempty"`
	PricingType         string   `json:"pricing_type,omitempty"`
	PriceMoney          *Money   `json:"price_money,omitempty"`
	ServiceDuration     int64    `json:"service_duration,omitempty"` // milliseconds
	AvailableForBooking bool     `json:"available_for_booking,omitempty"`
	TeamMemberIDs       []string `json:"team_member_ids,omitempty"`
}

// Customer is a Square customer record.
type Customer struct {
	ID           string `json:"id,omitempty"`
	GivenName    string `json:"given_name,omitempty"`
	FamilyName   string `json:"family_name,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

// PaymentLink is a hosted checkout link.
type PaymentLink struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	OrderID string `json:"order_id"`
}

// OrderLineItem is one line of a payment-link order.
type OrderLineItem struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	BasePriceMoney Money  `json:"base_price_money"`
	Note           string `json:"note,omitempty"`
}

// Order is the order attached to a payment link.
type Order struct {
	LocationID  string          `json:"location_id"`
	ReferenceID string          `json:"reference_id,omitempty"`
	TicketName  string          `json:"ticket_name,omitempty"`
	LineItems   []OrderLineItem `json:"line_items"`
}

// CheckoutOptions controls the hosted checkout page.
type CheckoutOptions struct {
	RedirectURL string `json:"redirect_url,omitempty"`
}

// CatalogIDMapping maps a client-side temporary id to the real id Square
// assigned during a batch upsert.
type CatalogIDMapping struct {
	ClientObjectID string `json:"client_object_id"`
	ObjectID       string `json:"object_id"`
}
