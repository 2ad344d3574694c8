package square

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListLocations returns all locations on the account.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var out struct {
		Locations []Location `json:"locations"`
	}
	if err := c.do(ctx, "locations.list", http.MethodGet, "/v2/locations", nil, &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

// ResolveLocation picks the business location: the configured override when
// set, else the first ACTIVE location, else the first location. The returned
// record carries the timezone used for all slot arithmetic.
func (c *Client) ResolveLocation(ctx context.Context, configuredID string) (*Location, error) {
	locations, err := c.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	if configuredID != "" {
		for i := range locations {
			if locations[i].ID == configuredID {
				return &locations[i], nil
			}
		}
		// Configured id not in the list; trust the operator and return a
		// minimal record with the UTC fallback timezone.
		c.logger.Warn("configured location id not returned by square", "location_id", configuredID)
		return &Location{ID: configuredID}, nil
	}
	for i := range locations {
		if locations[i].Status == "ACTIVE" {
			return &locations[i], nil
		}
	}
	if len(locations) > 0 {
		return &locations[0], nil
	}
	return nil, fmt.Errorf("square: no locations found for this account")
}

// ListTeamMemberProfiles returns booking profiles for a location, following
// pagination cursors.
func (c *Client) ListTeamMemberProfiles(ctx context.Context, locationID string, bookableOnly bool) ([]TeamMemberProfile, error) {
	var profiles []TeamMemberProfile
	cursor := ""
	for {
		q := url.Values{}
		q.Set("location_id", locationID)
		q.Set("bookable_only", strconv.FormatBool(bookableOnly))
		q.Set("limit", "100")
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		var out struct {
			Profiles []TeamMemberProfile `json:"team_member_booking_profiles"`
			Cursor   string              `json:"cursor"`
		}
		path := "/v2/bookings/team-member-booking-profiles?" + q.Encode()
		if err := c.do(ctx, "bookings.team_member_profiles.list", http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}
		profiles = append(profiles, out.Profiles...)
		if out.Cursor == "" {
			return profiles, nil
		}
		cursor = out.Cursor
	}
}

// ResolveTeamMemberID picks the assigned staff member: the configured override
// when set, else the first bookable profile at the location.
func (c *Client) ResolveTeamMemberID(ctx context.Context, locationID, configuredID string) (string, error) {
	if configuredID != "" {
		return configuredID, nil
	}
	profiles, err := c.ListTeamMemberProfiles(ctx, locationID, true)
	if err != nil {
		return "", err
	}
	for _, p := range profiles {
		if p.TeamMemberID != "" {
			return p.TeamMemberID, nil
		}
	}
	return "", fmt.Errorf("square: no bookable team members found for this location")
}
