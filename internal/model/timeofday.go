package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time expressed as minutes since midnight. Reservations
// and free windows are half-open [start, end) intervals of TimeOfDay on a
// single calendar date, so interval arithmetic never crosses midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute pair.
func NewTimeOfDay(hour, minute int) TimeOfDay { return TimeOfDay(hour*60 + minute) }

// Add returns the time shifted forward by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay { return t + TimeOfDay(minutes) }

// String renders the time in 24-hour "HH:MM" form, e.g. "09:05" or "14:30".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseTimeOfDay parses "HH:MM" (seconds, if present, are ignored). It
// rejects values outside a single day.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return NewTimeOfDay(h, m), nil
}

// Interval is a half-open [Start, End) slot on one calendar date.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// String renders the interval as "<start> - <end>", the wire shape used for
// occupied-slot and free-window listings.
func (iv Interval) String() string {
	return iv.Start.String() + " - " + iv.End.String()
}
