// Package pricing implements the pricing and discount engine: the tariff
// table, the weekend/holiday surcharge, the discount ladder and the
// per-person invoice computation. Everything here is a pure function of its
// inputs; money is carried as float64 and rounded to 2 decimals only at the
// aggregate level, matching the voucher compatibility surface.
package pricing

import (
	"math"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/schedule"
)

// vatRate is the fixed IVA applied to every net amount.
const vatRate = 0.19

// premiumSurcharge is the factor applied to the base price on weekends and
// listed holidays.
const premiumSurcharge = 1.15

// tariff maps a tier (lap count / time limit) to its list price and total
// track time. Loaded once, never mutated.
var tariff = map[int]struct {
	basePrice       int
	durationMinutes int
}{
	10: {15000, 30},
	15: {20000, 35},
	20: {25000, 40},
}

// ValidTier reports whether the tier is one of the closed set {10, 15, 20}.
func ValidTier(tier int) bool {
	_, ok := tariff[tier]
	return ok
}

// BaseAndDuration resolves the per-person base price and the slot duration
// for a tariff tier on a given date. Unknown tiers yield (0, 0); callers
// that create reservations must reject those before getting here. On
// weekends and listed holidays the base price is increased by 15%, rounded
// half-up to the nearest peso.
func BaseAndDuration(tier int, date time.Time) (basePrice, durationMinutes int) {
	t, ok := tariff[tier]
	if !ok {
		return 0, 0
	}
	basePrice = t.basePrice
	if schedule.IsPremiumDay(date) {
		basePrice = int(math.Round(float64(basePrice) * premiumSurcharge))
	}
	return basePrice, t.durationMinutes
}
