package booking

import (
	"testing"

	"github.com/la-masion/booking-api/internal/catalog"
)

func TestComputeTotalDollars(t *testing.T) {
	treatment := catalog.TreatmentByID("signature-head-spa")
	if treatment == nil {
		t.Fatal("expected signature-head-spa in the catalog")
	}

	total, err := ComputeTotalDollars(treatment, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 180 {
		t.Errorf("base total = %d, want 180", total)
	}

	addOns := catalog.AddOnsByIDs([]string{"scalp-mask", "hair-oil"})
	total, err = ComputeTotalDollars(treatment, addOns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 180+35+20 {
		t.Errorf("total with add-ons = %d, want 235", total)
	}
}

func TestDepositCentsTwentyPercent(t *testing.T) {
	svc := newTestService(&stubSquare{}, nil, nil, Options{})
	// 20% of a whole-dollar total, expressed in cents, is total*20.
	cases := []struct {
		totalDollars int
		want         int
	}{
		{180, 3600},
		{235, 4700},
		{95, 1900},
		{340, 6800},
	}
	for _, tc := range cases {
		if got := svc.DepositCents(tc.totalDollars); got != tc.want {
			t.Errorf("DepositCents(%d) = %d, want %d", tc.totalDollars, got, tc.want)
		}
	}
}

func TestDepositCentsOverride(t *testing.T) {
	svc := newTestService(&stubSquare{}, nil, nil, Options{ForcedDepositCents: 100})
	if got := svc.DepositCents(340); got != 100 {
		t.Errorf("forced deposit = %d, want 100", got)
	}

	// Zero and negative overrides never apply.
	svc = newTestService(&stubSquare{}, nil, nil, Options{ForcedDepositCents: 0})
	if got := svc.DepositCents(180); got != 3600 {
		t.Errorf("deposit with zero override = %d, want 3600", got)
	}
	svc = newTestService(&stubSquare{}, nil, nil, Options{ForcedDepositCents: -50})
	if got := svc.DepositCents(180); got != 3600 {
		t.Errorf("deposit with negative override = %d, want 3600", got)
	}
}
