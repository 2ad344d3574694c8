package catalog

import "testing"

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{"60 min", 60, false},
		{"90 minutes", 90, false},
		{"approx 45 min", 45, false},
		{"120", 120, false},
		{"abc", 0, true},
		{"", 0, true},
		{"0 min", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDurationMinutes(tc.label)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDurationMinutes(%q): expected error, got %d", tc.label, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDurationMinutes(%q): unexpected error: %v", tc.label, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDurationMinutes(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}
}

func TestTreatmentByID(t *testing.T) {
	if got := TreatmentByID("signature-head-spa"); got == nil || got.Name != "Signature Head Spa" {
		t.Fatalf("expected signature treatment, got %+v", got)
	}
	if got := TreatmentByID("nope"); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}
}

func TestAddOnsByIDs(t *testing.T) {
	got := AddOnsByIDs([]string{"hand-massage", "scalp-mask", "unknown"})
	if len(got) != 2 {
		t.Fatalf("expected 2 add-ons, got %d", len(got))
	}
	// Catalog order, not request order.
	if got[0].ID != "scalp-mask" || got[1].ID != "hand-massage" {
		t.Fatalf("expected catalog order, got %v", got)
	}
	if AddOnsByIDs(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestCatalogParsesCleanly(t *testing.T) {
	// Every shipped treatment must have a parseable duration and positive price;
	// a failure here is a fatal configuration error.
	for _, tr := range Treatments {
		if _, err := tr.DurationMinutes(); err != nil {
			t.Errorf("treatment %s: %v", tr.ID, err)
		}
		dollars, err := tr.PriceDollars()
		if err != nil {
			t.Errorf("treatment %s: %v", tr.ID, err)
		}
		if dollars <= 0 {
			t.Errorf("treatment %s: non-positive price %d", tr.ID, dollars)
		}
	}
}

func TestPriceDollarsInvalid(t *testing.T) {
	bad := &Treatment{ID: "x", Price: "free"}
	if _, err := bad.PriceDollars(); err == nil {
		t.Fatal("expected error for unparseable price")
	}
	zero := &Treatment{ID: "y", Price: "0"}
	if _, err := zero.PriceDollars(); err == nil {
		t.Fatal("expected error for zero price")
	}
}
