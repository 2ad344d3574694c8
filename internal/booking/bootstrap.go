package booking

import (
	"context"
	"strings"

	"github.com/la-masion/booking-api/internal/catalog"
	"github.com/la-masion/booking-api/internal/square"
)

// The bootstrap idempotency key is versioned, not random: re-running the
// bootstrap against the same catalog generation must be a no-op upsert.
const bootstrapIdempotencyKey = "la-masion-appointments-services-v1"

// VariationMapping ties an internal service id to its Square catalog ids.
type VariationMapping struct {
	ItemID           string `json:"itemId"`
	VariationID      string `json:"variationId"`
	VariationVersion int64  `json:"variationVersion"`
}

// BootstrapResult is the outcome of syncing the static catalog into Square.
type BootstrapResult struct {
	LocationID   string                      `json:"locationId"`
	TeamMemberID string                      `json:"teamMemberId"`
	Mapping      map[string]VariationMapping `json:"mapping"`
}

// BootstrapCatalog upserts every treatment into the Square catalog as an
// appointments-service item with a single fixed-price "Standard" variation,
// and returns the internal-id to catalog-id mapping the operator pastes into
// SQUARE_APPOINTMENT_VARIATION_MAP.
func (s *Service) BootstrapCatalog(ctx context.Context) (*BootstrapResult, error) {
	location, err := s.sq.ResolveLocation(ctx, s.opts.LocationID)
	if err != nil {
		return nil, err
	}
	teamMemberID, err := s.sq.ResolveTeamMemberID(ctx, location.ID, s.opts.TeamMemberID)
	if err != nil {
		return nil, err
	}

	objects := make([]map[string]any, 0, len(catalog.Treatments))
	tempItemIDs := make(map[string]string, len(catalog.Treatments))
	tempVariationIDs := make(map[string]string, len(catalog.Treatments))

	for i := range catalog.Treatments {
		t := &catalog.Treatments[i]
		priceDollars, err := t.PriceDollars()
		if err != nil {
			return nil, configurationErrorf(err.Error())
		}
		durationMinutes, err := t.DurationMinutes()
		if err != nil {
			return nil, configurationErrorf(err.Error())
		}

		itemTempID := "#svc_" + t.ID
		variationTempID := "#var_" + t.ID
		tempItemIDs[t.ID] = itemTempID
		tempVariationIDs[t.ID] = variationTempID

		// Items and variations go up as flat siblings linked by temp id; the
		// batch-upsert response is flat too, which keeps version collection
		// a single pass over result.Objects.
		objects = append(objects, map[string]any{
			"type":                     "ITEM",
			"id":                       itemTempID,
			"present_at_all_locations": true,
			"item_data": map[string]any{
				"name":         t.Name,
				"description":  t.Description,
				"product_type": "APPOINTMENTS_SERVICE",
			},
		})
		objects = append(objects, map[string]any{
			"type":                     "ITEM_VARIATION",
			"id":                       variationTempID,
			"present_at_all_locations": true,
			"item_variation_data": map[string]any{
				"item_id":      itemTempID,
				"name":         "Standard",
				"pricing_type": "FIXED_PRICING",
				"price_money": map[string]any{
					"amount":   int64(priceDollars) * 100,
					"currency": s.opts.Currency,
				},
				"service_duration":      int64(durationMinutes) * 60 * 1000,
				"available_for_booking": true,
				"team_member_ids":       []string{teamMemberID},
			},
		})
	}

	result, err := s.sq.BatchUpsertCatalog(ctx, bootstrapIdempotencyKey, objects)
	if err != nil {
		return nil, err
	}

	realIDs := make(map[string]string, len(result.IDMappings))
	for _, m := range result.IDMappings {
		realIDs[m.ClientObjectID] = m.ObjectID
	}
	versions := make(map[string]int64, len(result.Objects))
	collectVersions(result.Objects, versions)

	mapping := make(map[string]VariationMapping, len(catalog.Treatments))
	for i := range catalog.Treatments {
		t := &catalog.Treatments[i]
		variationID := realIDs[tempVariationIDs[t.ID]]
		mapping[t.ID] = VariationMapping{
			ItemID:           realIDs[tempItemIDs[t.ID]],
			VariationID:      variationID,
			VariationVersion: versions[variationID],
		}
	}

	s.logger.Info("catalog bootstrap complete",
		"location_id", location.ID,
		"team_member_id", teamMemberID,
		"services", len(mapping),
	)
	return &BootstrapResult{
		LocationID:   location.ID,
		TeamMemberID: teamMemberID,
		Mapping:      mapping,
	}, nil
}

// collectVersions indexes catalog-object versions by id. The upsert submits
// flat sibling objects, so the response carries every variation at top level.
func collectVersions(objects []square.CatalogObject, out map[string]int64) {
	for i := range objects {
		obj := &objects[i]
		if obj.ID != "" {
			out[obj.ID] = obj.Version
		}
	}
}

// ServiceVariation is one bookable catalog variation, as listed by the
// read-only services mirror.
type ServiceVariation struct {
	VariationID         string `json:"variationId"`
	VariationName       string `json:"variationName"`
	VariationVersion    int64  `json:"variationVersion"`
	ItemID              string `json:"itemId"`
	ItemName            string `json:"itemName"`
	ProductType         string `json:"productType"`
	AvailableForBooking bool   `json:"availableForBooking"`
	PriceCents          int64  `json:"priceCents"`
	Currency            string `json:"currency"`
	DurationMinutes     int64  `json:"durationMinutes"`
}

// ListServiceVariations lists the catalog's service variations, for operators
// wiring up the variation map. q narrows by keywords (at most three are sent);
// includeAll keeps variations that are not appointment services.
func (s *Service) ListServiceVariations(ctx context.Context, q string, includeAll bool) ([]ServiceVariation, error) {
	keywords := strings.Fields(strings.TrimSpace(q))
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}

	var (
		variations []square.CatalogObject
		items      = make(map[string]*square.CatalogObject)
		cursor     string
	)
	for page := 0; page < 10; page++ {
		result, err := s.sq.SearchCatalog(ctx, []string{"ITEM", "ITEM_VARIATION"}, keywords, cursor, 100)
		if err != nil {
			return nil, err
		}
		for i := range result.Objects {
			obj := &result.Objects[i]
			switch obj.Type {
			case "ITEM_VARIATION":
				variations = append(variations, *obj)
			case "ITEM":
				items[obj.ID] = obj
			}
		}
		for i := range result.RelatedObjects {
			obj := &result.RelatedObjects[i]
			if obj.Type == "ITEM" {
				items[obj.ID] = obj
			}
		}
		cursor = result.Cursor
		if cursor == "" {
			break
		}
	}

	out := make([]ServiceVariation, 0, len(variations))
	for i := range variations {
		v := &variations[i]
		if v.ItemVariationData == nil {
			continue
		}
		entry := ServiceVariation{
			VariationID:         v.ID,
			VariationName:       v.ItemVariationData.Name,
			VariationVersion:    v.Version,
			ItemID:              v.ItemVariationData.ItemID,
			AvailableForBooking: v.ItemVariationData.AvailableForBooking,
			DurationMinutes:     v.ItemVariationData.ServiceDuration / 60000,
		}
		if item := items[entry.ItemID]; item != nil && item.ItemData != nil {
			entry.ItemName = item.ItemData.Name
			entry.ProductType = item.ItemData.ProductType
		}
		if v.ItemVariationData.PriceMoney != nil {
			entry.PriceCents = v.ItemVariationData.PriceMoney.Amount
			entry.Currency = v.ItemVariationData.PriceMoney.Currency
		}
		if !includeAll && entry.ProductType != "APPOINTMENTS_SERVICE" {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}
