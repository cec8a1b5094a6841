package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/model"
)

type fakeSource struct {
	reservations []model.Reservation
	err          error
	from, to     time.Time
}

func (f *fakeSource) FindByDateRange(_ context.Context, from, to time.Time) ([]model.Reservation, error) {
	f.from, f.to = from, to
	return f.reservations, f.err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func reservation(date time.Time, tier, party int, gross float64) model.Reservation {
	return model.Reservation{
		TariffTier: tier,
		PartySize:  party,
		StartDate:  date,
		Invoice:    &model.Invoice{GrossTotal: gross},
	}
}

func TestByTariff(t *testing.T) {
	src := &fakeSource{reservations: []model.Reservation{
		reservation(day(2025, time.June, 3), 10, 2, 100),
		reservation(day(2025, time.June, 10), 15, 4, 150),
		reservation(day(2025, time.June, 17), 20, 6, 200),
		// Unknown tier still counts toward TOTAL.
		reservation(day(2025, time.June, 24), 5, 2, 50),
	}}
	agg := NewAggregator(src)

	out, err := agg.ByTariff(context.Background(), day(2025, time.June, 1), day(2025, time.June, 30))
	if err != nil {
		t.Fatalf("ByTariff: %v", err)
	}
	row, ok := out["2025-06"]
	if !ok {
		t.Fatalf("missing month row, got %v", out)
	}
	want := map[string]float64{"10": 100, "15": 150, "20": 200, "TOTAL": 500}
	for bucket, amount := range want {
		if row[bucket] != amount {
			t.Errorf("bucket %q = %v, want %v", bucket, row[bucket], amount)
		}
	}
	if len(row) != len(tierBuckets) {
		t.Errorf("row has %d buckets %v, want %d", len(row), row, len(tierBuckets))
	}
}

func TestByPartySize(t *testing.T) {
	src := &fakeSource{reservations: []model.Reservation{
		reservation(day(2025, time.June, 3), 10, 2, 100),
		reservation(day(2025, time.June, 5), 10, 4, 200),
		reservation(day(2025, time.June, 7), 10, 8, 300),
		reservation(day(2025, time.June, 9), 10, 12, 400),
		reservation(day(2025, time.July, 2), 10, 1, 50),
	}}
	agg := NewAggregator(src)

	out, err := agg.ByPartySize(context.Background(), day(2025, time.June, 1), day(2025, time.July, 31))
	if err != nil {
		t.Fatalf("ByPartySize: %v", err)
	}

	june := out["2025-06"]
	for bucket, amount := range map[string]float64{
		"1-2": 100, "3-5": 200, "6-10": 300, "11-15": 400, "TOTAL": 1000,
	} {
		if june[bucket] != amount {
			t.Errorf("june %q = %v, want %v", bucket, june[bucket], amount)
		}
	}

	july := out["2025-07"]
	if july["1-2"] != 50 || july["TOTAL"] != 50 {
		t.Errorf("july row = %v, want 1-2 and TOTAL at 50", july)
	}
	// Unused buckets are present and zeroed so report columns stay stable.
	if v, ok := july["11-15"]; !ok || v != 0 {
		t.Errorf("july 11-15 = %v (present=%v), want zero", v, ok)
	}
}

func TestAggregateExpandsRangeToWholeMonths(t *testing.T) {
	src := &fakeSource{}
	agg := NewAggregator(src)

	if _, err := agg.ByTariff(context.Background(), day(2025, time.June, 15), day(2025, time.August, 3)); err != nil {
		t.Fatalf("ByTariff: %v", err)
	}
	if !src.from.Equal(day(2025, time.June, 1)) {
		t.Errorf("query from = %v, want 2025-06-01", src.from)
	}
	if !src.to.Equal(day(2025, time.August, 31)) {
		t.Errorf("query to = %v, want 2025-08-31", src.to)
	}
}

func TestAggregateSkipsMissingInvoices(t *testing.T) {
	src := &fakeSource{reservations: []model.Reservation{
		{TariffTier: 10, PartySize: 2, StartDate: day(2025, time.June, 3)}, // no invoice
		reservation(day(2025, time.June, 4), 10, 2, 100.4),
	}}
	agg := NewAggregator(src)

	out, err := agg.ByTariff(context.Background(), day(2025, time.June, 1), day(2025, time.June, 30))
	if err != nil {
		t.Fatalf("ByTariff: %v", err)
	}
	// Gross totals are rounded to whole amounts per reservation.
	if row := out["2025-06"]; row["10"] != 100 || row["TOTAL"] != 100 {
		t.Errorf("row = %v, want 100 from the single invoiced reservation", row)
	}
}

func TestAggregateInvalidRange(t *testing.T) {
	agg := NewAggregator(&fakeSource{})
	_, err := agg.ByTariff(context.Background(), day(2025, time.July, 1), day(2025, time.June, 1))
	if !errors.Is(err, booking.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAggregateStoreError(t *testing.T) {
	boom := errors.New("storage down")
	agg := NewAggregator(&fakeSource{err: boom})
	_, err := agg.ByPartySize(context.Background(), day(2025, time.June, 1), day(2025, time.June, 30))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
