package schedule

import (
	"sort"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// minWindowMinutes is the shortest free window worth offering. Gaps shorter
// than this are dropped entirely, never merged or rounded.
const minWindowMinutes = 30

// Conflicts reports whether a candidate [start, end) slot overlaps any of
// the existing same-date intervals. Touching boundaries (end == s or
// start == e) are not conflicts.
func Conflicts(start, end model.TimeOfDay, existing []model.Interval) bool {
	for _, iv := range existing {
		if start < iv.End && end > iv.Start {
			return true
		}
	}
	return false
}

// FreeWindows sweeps the booked intervals of a single day, sorted by
// ascending start, and returns the free windows between dayOpen and
// dayClose. Output windows are disjoint and ascending; together with the
// booked intervals and the dropped sub-30-minute gaps they tile
// [dayOpen, dayClose) exactly.
func FreeWindows(dayOpen, dayClose model.TimeOfDay, booked []model.Interval) []model.Interval {
	windows := make([]model.Interval, 0, len(booked)+1)
	cursor := dayOpen

	for _, iv := range booked {
		if cursor < iv.Start && int(iv.Start-cursor) >= minWindowMinutes {
			windows = append(windows, model.Interval{Start: cursor, End: iv.Start})
		}
		if cursor < iv.End {
			cursor = iv.End
		}
	}

	if cursor < dayClose && int(dayClose-cursor) >= minWindowMinutes {
		windows = append(windows, model.Interval{Start: cursor, End: dayClose})
	}
	return windows
}

// DayWindows pairs a calendar date with its free windows.
type DayWindows struct {
	Date    time.Time
	Windows []model.Interval
}

// IntervalLookup fetches the booked intervals for one date. Order is not
// assumed; SixMonthWindows sorts before sweeping.
type IntervalLookup func(date time.Time) ([]model.Interval, error)

// SixMonthWindows computes the free windows for every day from the first
// day of the reference date's month through the last day of the month six
// months later, inclusive. Days are returned in calendar order; a fully
// booked day is present with an empty window list.
func SixMonthWindows(reference time.Time, lookup IntervalLookup) ([]DayWindows, error) {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := first.AddDate(0, 6, 0)
	// Last day of lastMonth: first day of the following month minus one day.
	end := time.Date(lastMonth.Year(), lastMonth.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1)

	days := make([]DayWindows, 0, int(end.Sub(first).Hours()/24)+1)
	for date := first; !date.After(end); date = date.AddDate(0, 0, 1) {
		booked, err := lookup(date)
		if err != nil {
			return nil, err
		}
		sort.Slice(booked, func(i, j int) bool { return booked[i].Start < booked[j].Start })
		days = append(days, DayWindows{
			Date:    date,
			Windows: FreeWindows(OpeningTime(date), ClosingTime(date), booked),
		})
	}
	return days, nil
}
