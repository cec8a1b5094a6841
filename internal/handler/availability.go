package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/model"
	"github.com/iliyamo/kart-track-reservation/internal/repository"
	"github.com/iliyamo/kart-track-reservation/internal/schedule"
)

// AvailabilityHandler serves the free-window calendar and the occupied-slot
// map. Both endpoints are read-only and sit behind the Redis response cache.
type AvailabilityHandler struct {
	Reservations *repository.ReservationRepo
	Orchestrator *booking.Orchestrator
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(r *repository.ReservationRepo, o *booking.Orchestrator) *AvailabilityHandler {
	if r == nil || o == nil {
		panic("nil dependency passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Reservations: r, Orchestrator: o}
}

// Calendar handles GET /v1/availability/calendar?from=YYYY-MM-DD. It
// returns the free windows for every day from the first day of the
// reference month through the last day of the month six months later,
// keyed by date. The "from" parameter defaults to today. Window strings
// use the "HH:MM - HH:MM" shape.
func (h *AvailabilityHandler) Calendar(c echo.Context) error {
	reference := time.Now().UTC()
	if s := strings.TrimSpace(c.QueryParam("from")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date"})
		}
		reference = t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	days, err := schedule.SixMonthWindows(reference, func(date time.Time) ([]model.Interval, error) {
		reservations, err := h.Reservations.FindByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		intervals := make([]model.Interval, 0, len(reservations))
		for i := range reservations {
			intervals = append(intervals, reservations[i].Slot())
		}
		return intervals, nil
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// JSON object keys marshal sorted, and "YYYY-MM-DD" sorts
	// chronologically, so the calendar serializes in day order.
	out := make(map[string][]string, len(days))
	for _, d := range days {
		windows := make([]string, 0, len(d.Windows))
		for _, w := range d.Windows {
			windows = append(windows, w.String())
		}
		out[d.Date.Format("2006-01-02")] = windows
	}
	return c.JSON(http.StatusOK, out)
}

// Occupied handles GET /v1/availability/occupied?from=...&to=... and
// returns every booked slot grouped by date.
func (h *AvailabilityHandler) Occupied(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	occupied, err := h.Orchestrator.OccupiedSlots(ctx, from, to)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidRange) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must not be after to"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, occupied)
}

// parseRange reads the from/to query parameters shared by the range
// endpoints. Format errors are reported; ordering is left to the callee so
// ErrInvalidRange surfaces consistently.
func parseRange(c echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", strings.TrimSpace(c.QueryParam("from")))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	to, err := time.Parse("2006-01-02", strings.TrimSpace(c.QueryParam("to")))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	return from, to, nil
}
