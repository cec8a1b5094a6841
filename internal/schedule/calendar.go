// Package schedule implements the availability engine for the track: the
// interval conflict test, the free-window sweep over a single day, and the
// rolling six-month calendar of free windows. All computations are pure and
// operate on same-date intervals only; cross-date comparisons never happen.
package schedule

import (
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// Daily operating window. The track opens earlier on weekends and holidays
// and always closes at 22:00.
var (
	weekdayOpen = model.NewTimeOfDay(14, 0)
	premiumOpen = model.NewTimeOfDay(10, 0)
	dayClose    = model.NewTimeOfDay(22, 0)
)

// holidays is the fixed table of non-working calendar dates that count as
// premium days, keyed "YYYY-MM-DD". Loaded once, never mutated.
var holidays = map[string]struct{}{
	"2025-01-01": {},
	"2025-05-01": {},
	"2025-09-18": {},
	"2025-12-25": {},
}

// IsHoliday reports whether the date is in the fixed holiday table.
func IsHoliday(date time.Time) bool {
	_, ok := holidays[date.Format("2006-01-02")]
	return ok
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsPremiumDay reports whether the weekend/holiday surcharge and the early
// opening apply to the date.
func IsPremiumDay(date time.Time) bool {
	return IsWeekend(date) || IsHoliday(date)
}

// OpeningTime returns when the track opens on the given date: 10:00 on
// weekends and holidays, 14:00 otherwise.
func OpeningTime(date time.Time) model.TimeOfDay {
	if IsPremiumDay(date) {
		return premiumOpen
	}
	return weekdayOpen
}

// ClosingTime returns when the track closes. Fixed at 22:00 for every day.
func ClosingTime(time.Time) model.TimeOfDay { return dayClose }
