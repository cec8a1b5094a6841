package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/report"
)

// ReportHandler serves the monthly revenue reports. Routes are restricted
// to the EMPLOYEE role by middleware.
type ReportHandler struct {
	Aggregator *report.Aggregator
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(a *report.Aggregator) *ReportHandler {
	if a == nil {
		panic("nil aggregator passed to NewReportHandler")
	}
	return &ReportHandler{Aggregator: a}
}

// ByTariff handles GET /v1/reports/by-tariff?from=...&to=....
func (h *ReportHandler) ByTariff(c echo.Context) error {
	return h.serve(c, h.Aggregator.ByTariff)
}

// ByPartySize handles GET /v1/reports/by-party-size?from=...&to=....
func (h *ReportHandler) ByPartySize(c echo.Context) error {
	return h.serve(c, h.Aggregator.ByPartySize)
}

func (h *ReportHandler) serve(c echo.Context, agg func(context.Context, time.Time, time.Time) (map[string]map[string]float64, error)) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	out, err := agg(ctx, from, to)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidRange) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must not be after to"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
