// Package report aggregates historical reservations into monthly revenue
// buckets. Aggregation is read-only and tolerates stale reads; it never
// writes through its store.
package report

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// Tier bucket labels, in report column order. TOTAL accumulates every
// reservation that carries an invoice, including ones whose tier falls
// outside the known set.
var tierBuckets = []string{"10", "15", "20", "TOTAL"}

// Party-size bucket labels. Reservations outside 1-15 people contribute to
// TOTAL only.
var partyBuckets = []string{"1-2", "3-5", "6-10", "11-15", "TOTAL"}

// Source is the read side of the reservation store used by reports.
type Source interface {
	FindByDateRange(ctx context.Context, from, to time.Time) ([]model.Reservation, error)
}

// Aggregator groups reservations by calendar month and sums invoice gross
// totals into fixed buckets.
type Aggregator struct {
	store Source
}

// NewAggregator returns an Aggregator reading from the given source.
func NewAggregator(store Source) *Aggregator { return &Aggregator{store: store} }

// ByTariff reports revenue per month, bucketed by tariff tier. The range is
// expanded to whole calendar months before querying. Month keys use the
// "YYYY-MM" form, which sorts chronologically.
func (a *Aggregator) ByTariff(ctx context.Context, from, to time.Time) (map[string]map[string]float64, error) {
	return a.aggregate(ctx, from, to, tierBuckets, func(r *model.Reservation) string {
		switch r.TariffTier {
		case 10, 15, 20:
			return strconv.Itoa(r.TariffTier)
		}
		return ""
	})
}

// ByPartySize reports revenue per month, bucketed by party-size range.
func (a *Aggregator) ByPartySize(ctx context.Context, from, to time.Time) (map[string]map[string]float64, error) {
	return a.aggregate(ctx, from, to, partyBuckets, func(r *model.Reservation) string {
		switch n := r.PartySize; {
		case n >= 1 && n <= 2:
			return "1-2"
		case n >= 3 && n <= 5:
			return "3-5"
		case n >= 6 && n <= 10:
			return "6-10"
		case n >= 11 && n <= 15:
			return "11-15"
		}
		return ""
	})
}

// aggregate walks the reservations of the expanded range and accumulates
// each invoice's gross total (rounded to a whole amount per reservation)
// into the month's bucket map. A bucketFn returning "" means the
// reservation is out of range for the per-bucket sums; it still counts
// toward TOTAL. Reservations without an invoice are skipped entirely.
func (a *Aggregator) aggregate(ctx context.Context, from, to time.Time, buckets []string, bucketFn func(*model.Reservation) string) (map[string]map[string]float64, error) {
	if from.After(to) {
		return nil, booking.ErrInvalidRange
	}

	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	reservations, err := a.store.FindByDateRange(ctx, first, last)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]float64)
	for i := range reservations {
		r := &reservations[i]
		if r.Invoice == nil {
			continue
		}
		monthKey := r.StartDate.Format("2006-01")
		row, ok := out[monthKey]
		if !ok {
			row = make(map[string]float64, len(buckets))
			for _, b := range buckets {
				row[b] = 0
			}
			out[monthKey] = row
		}
		amount := math.Round(r.Invoice.GrossTotal)
		if b := bucketFn(r); b != "" {
			row[b] += amount
		}
		row["TOTAL"] += amount
	}
	return out, nil
}
