package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tod(h, m int) model.TimeOfDay { return model.NewTimeOfDay(h, m) }

func TestOpeningTime(t *testing.T) {
	cases := []struct {
		name string
		day  time.Time
		want model.TimeOfDay
	}{
		{"weekday", date(2025, time.June, 4), tod(14, 0)},   // Wednesday
		{"saturday", date(2025, time.June, 7), tod(10, 0)},
		{"sunday", date(2025, time.June, 8), tod(10, 0)},
		{"holiday on weekday", date(2025, time.September, 18), tod(10, 0)}, // Thursday
		{"christmas", date(2025, time.December, 25), tod(10, 0)},
	}
	for _, tc := range cases {
		if got := OpeningTime(tc.day); got != tc.want {
			t.Errorf("%s: OpeningTime = %v, want %v", tc.name, got, tc.want)
		}
		if got := ClosingTime(tc.day); got != tod(22, 0) {
			t.Errorf("%s: ClosingTime = %v, want 22:00", tc.name, got)
		}
	}
}

func TestIsPremiumDay(t *testing.T) {
	if IsPremiumDay(date(2025, time.June, 4)) {
		t.Error("plain Wednesday should not be premium")
	}
	if !IsPremiumDay(date(2025, time.June, 7)) {
		t.Error("Saturday should be premium")
	}
	if !IsPremiumDay(date(2025, time.May, 1)) {
		t.Error("May 1st holiday should be premium")
	}
}

func TestConflicts(t *testing.T) {
	existing := []model.Interval{{Start: tod(15, 0), End: tod(15, 30)}}

	cases := []struct {
		name       string
		start, end model.TimeOfDay
		want       bool
	}{
		{"identical", tod(15, 0), tod(15, 30), true},
		{"partial overlap front", tod(14, 45), tod(15, 15), true},
		{"partial overlap back", tod(15, 15), tod(15, 45), true},
		{"contains existing", tod(14, 0), tod(16, 0), true},
		{"inside existing", tod(15, 10), tod(15, 20), true},
		{"touching end is free", tod(15, 30), tod(16, 0), false},
		{"touching start is free", tod(14, 30), tod(15, 0), false},
		{"disjoint", tod(18, 0), tod(18, 30), false},
	}
	for _, tc := range cases {
		if got := Conflicts(tc.start, tc.end, existing); got != tc.want {
			t.Errorf("%s: Conflicts = %v, want %v", tc.name, got, tc.want)
		}
	}

	if Conflicts(tod(15, 0), tod(15, 30), nil) {
		t.Error("no existing intervals should never conflict")
	}
}

func TestFreeWindows(t *testing.T) {
	open, close := tod(14, 0), tod(22, 0)

	cases := []struct {
		name   string
		booked []model.Interval
		want   []model.Interval
	}{
		{
			name:   "empty day is one window",
			booked: nil,
			want:   []model.Interval{{Start: open, End: close}},
		},
		{
			name:   "booking splits the day",
			booked: []model.Interval{{Start: tod(15, 0), End: tod(16, 0)}},
			want: []model.Interval{
				{Start: tod(14, 0), End: tod(15, 0)},
				{Start: tod(16, 0), End: tod(22, 0)},
			},
		},
		{
			name:   "gap under 30 minutes is dropped",
			booked: []model.Interval{{Start: tod(14, 20), End: tod(16, 0)}},
			want:   []model.Interval{{Start: tod(16, 0), End: tod(22, 0)}},
		},
		{
			name: "exact 30 minute gap survives",
			booked: []model.Interval{
				{Start: tod(14, 30), End: tod(21, 30)},
			},
			want: []model.Interval{
				{Start: tod(14, 0), End: tod(14, 30)},
				{Start: tod(21, 30), End: tod(22, 0)},
			},
		},
		{
			name: "back to back bookings leave no gap",
			booked: []model.Interval{
				{Start: tod(14, 0), End: tod(18, 0)},
				{Start: tod(18, 0), End: tod(22, 0)},
			},
			want: []model.Interval{},
		},
		{
			name:   "booking overhanging close",
			booked: []model.Interval{{Start: tod(21, 0), End: tod(22, 0)}},
			want:   []model.Interval{{Start: tod(14, 0), End: tod(21, 0)}},
		},
	}
	for _, tc := range cases {
		got := FreeWindows(open, close, tc.booked)
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %d windows %v, want %d", tc.name, len(got), got, len(tc.want))
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: window %d = %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}

// Free windows, booked slots and dropped short gaps must tile the operating
// day exactly: every free window lies inside [open, close) and never
// overlaps a booked interval.
func TestFreeWindowsDisjointFromBookings(t *testing.T) {
	open, close := tod(10, 0), tod(22, 0)
	booked := []model.Interval{
		{Start: tod(10, 30), End: tod(11, 0)},
		{Start: tod(11, 10), End: tod(12, 0)},
		{Start: tod(15, 0), End: tod(15, 40)},
	}
	for _, w := range FreeWindows(open, close, booked) {
		if w.Start < open || w.End > close || w.Start >= w.End {
			t.Errorf("window %v escapes the operating day", w)
		}
		if int(w.End-w.Start) < 30 {
			t.Errorf("window %v shorter than 30 minutes", w)
		}
		if Conflicts(w.Start, w.End, booked) {
			t.Errorf("window %v overlaps a booking", w)
		}
	}
}

func TestSixMonthWindows(t *testing.T) {
	booked := map[string][]model.Interval{
		// Unsorted on purpose; the sweep must sort before tiling.
		"2025-06-02": {
			{Start: tod(18, 0), End: tod(18, 30)},
			{Start: tod(14, 0), End: tod(15, 0)},
		},
	}
	days, err := SixMonthWindows(date(2025, time.June, 15), func(d time.Time) ([]model.Interval, error) {
		return booked[d.Format("2006-01-02")], nil
	})
	if err != nil {
		t.Fatalf("SixMonthWindows: %v", err)
	}

	// June through December 2025 inclusive.
	if want := 30 + 31 + 31 + 30 + 31 + 30 + 31; len(days) != want {
		t.Fatalf("got %d days, want %d", len(days), want)
	}
	if got := days[0].Date; !got.Equal(date(2025, time.June, 1)) {
		t.Errorf("first day = %v, want 2025-06-01", got)
	}
	if got := days[len(days)-1].Date; !got.Equal(date(2025, time.December, 31)) {
		t.Errorf("last day = %v, want 2025-12-31", got)
	}

	// 2025-06-01 is a Sunday: one untouched premium-day window.
	first := days[0].Windows
	if len(first) != 1 || first[0] != (model.Interval{Start: tod(10, 0), End: tod(22, 0)}) {
		t.Errorf("2025-06-01 windows = %v, want [10:00 - 22:00]", first)
	}

	// 2025-06-02 is a Monday with two bookings: 15:00-18:00 and 18:30-22:00
	// remain free.
	second := days[1].Windows
	want := []model.Interval{
		{Start: tod(15, 0), End: tod(18, 0)},
		{Start: tod(18, 30), End: tod(22, 0)},
	}
	if len(second) != len(want) {
		t.Fatalf("2025-06-02 windows = %v, want %v", second, want)
	}
	for i := range want {
		if second[i] != want[i] {
			t.Errorf("2025-06-02 window %d = %v, want %v", i, second[i], want[i])
		}
	}
}

func TestSixMonthWindowsLookupError(t *testing.T) {
	boom := errors.New("storage down")
	_, err := SixMonthWindows(date(2025, time.June, 15), func(time.Time) ([]model.Interval, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
}
