package booking

import "github.com/la-masion/booking-api/internal/catalog"

// ComputeTotalDollars sums the treatment base price and selected add-ons in
// whole dollars.
func ComputeTotalDollars(treatment *catalog.Treatment, addOns []catalog.AddOn) (int, error) {
	base, err := treatment.PriceDollars()
	if err != nil {
		return 0, err
	}
	total := base
	for _, a := range addOns {
		total += a.PriceDollars
	}
	return total, nil
}

// DepositCents computes the deposit in minor currency units. The default is a
// 20% deposit: a whole-dollar total times 20 lands directly in cents. A
// positive operator override replaces the computation unconditionally; zero or
// negative overrides never apply.
func (s *Service) DepositCents(totalDollars int) int {
	if s.opts.ForcedDepositCents > 0 {
		return s.opts.ForcedDepositCents
	}
	return totalDollars * 20
}
