// Package catalog holds the spa's immutable service reference data. Treatments
// and add-ons are loaded at process start and are not user-mutable; the Square
// catalog is synced from this data via the admin bootstrap endpoint.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Treatment is one bookable service.
type Treatment struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Duration    string   `json:"duration"` // free-text label, e.g. "60 min"
	Price       string   `json:"price"`    // whole dollars as a decimal string
	Description string   `json:"description"`
	Features    []string `json:"features"`
	BestFor     []string `json:"bestFor,omitempty"`
}

// AddOn is an optional extra bookable alongside a treatment.
type AddOn struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceDollars int    `json:"price"`
}

// Treatments is the fixed service catalog.
var Treatments = []Treatment{
	{
		ID:          "signature-head-spa",
		Name:        "Signature Head Spa",
		Duration:    "60 min",
		Price:       "180",
		Description: "Our signature ritual combining deep scalp cleanse, targeted treatment, and pressure-point massage. Ideal for first-time guests.",
		Features:    []string{"Consultation", "Deep Cleanse", "Scalp Treatment", "Massage", "Finishing"},
		BestFor:     []string{"First-time guests", "Stress relief", "Hair health"},
	},
	{
		ID:          "deep-renewal",
		Name:        "Deep Renewal",
		Duration:    "90 min",
		Price:       "260",
		Description: "Extended therapy session for intensive restoration. Includes enhanced massage, aromatic infusions, and luxury finishing ritual.",
		Features:    []string{"Extended Consultation", "Double Cleanse", "Intensive Treatment", "Extended Massage", "Luxury Finishing"},
		BestFor:     []string{"Deep relaxation", "Chronic tension", "Ultimate luxury"},
	},
	{
		ID:          "express-refresh",
		Name:        "Express Refresh",
		Duration:    "30 min",
		Price:       "95",
		Description: "Quick reset for busy schedules. Focused scalp cleanse and revitalizing massage to restore balance and clarity.",
		Features:    []string{"Quick Consultation", "Cleanse", "Focused Massage"},
		BestFor:     []string{"Busy schedules", "Quick refresh", "Lunch break"},
	},
	{
		ID:          "couples-experience",
		Name:        "Couples Experience",
		Duration:    "60 min",
		Price:       "340",
		Description: "Share the experience. Two guests enjoy side-by-side signature treatments in our private dual-treatment suite.",
		Features:    []string{"Private Suite", "Dual Treatments", "Shared Ritual", "Refreshments"},
		BestFor:     []string{"Couples", "Special occasions", "Shared wellness"},
	},
}

// BookingAddOns are the extras offered in the booking flow.
var BookingAddOns = []AddOn{
	{ID: "scalp-mask", Name: "Intensive Scalp Mask", PriceDollars: 35},
	{ID: "aroma-upgrade", Name: "Aromatherapy Upgrade", PriceDollars: 25},
	{ID: "hand-massage", Name: "Hand & Arm Massage", PriceDollars: 30},
	{ID: "hair-oil", Name: "Finishing Hair Oil Ritual", PriceDollars: 20},
}

// TreatmentByID returns the treatment with the given id, or nil.
func TreatmentByID(id string) *Treatment {
	for i := range Treatments {
		if Treatments[i].ID == id {
			return &Treatments[i]
		}
	}
	return nil
}

// AddOnsByIDs filters the add-on catalog to the given ids, preserving catalog order.
func AddOnsByIDs(ids []string) []AddOn {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []AddOn
	for _, a := range BookingAddOns {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// ParseDurationMinutes extracts the first contiguous run of digits from a
// free-text duration label ("60 min" -> 60). A label with no digits or a
// non-positive result is a configuration error for that service.
func ParseDurationMinutes(label string) (int, error) {
	start := -1
	end := -1
	for i, r := range label {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			end = i + 1
		} else if start != -1 {
			break
		}
	}
	if start == -1 {
		return 0, fmt.Errorf("catalog: unable to parse minutes from duration: %s", label)
	}
	minutes, err := strconv.Atoi(label[start:end])
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("catalog: unable to parse minutes from duration: %s", label)
	}
	return minutes, nil
}

// PriceDollars converts a treatment's decimal-string price into whole dollars.
func (t *Treatment) PriceDollars() (int, error) {
	raw := strings.TrimSpace(t.Price)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("catalog: invalid price: %s", t.Price)
	}
	return int(value), nil
}

// DurationMinutes parses the treatment's duration label.
func (t *Treatment) DurationMinutes() (int, error) {
	return ParseDurationMinutes(t.Duration)
}
