package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/model"
	"github.com/iliyamo/kart-track-reservation/internal/pricing"
	"github.com/iliyamo/kart-track-reservation/internal/queue"
	"github.com/iliyamo/kart-track-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/kart-track-reservation/internal/service"
)

// BookingHandler exposes the reservation creation path and the read
// endpoints around it. Request validation happens here (closed tariff enum,
// bounded party size, equal-length name/email lists); the orchestrator owns
// the business rules.
type BookingHandler struct {
	Orchestrator *booking.Orchestrator
	Reservations *repository.ReservationRepo
	Clients      *repository.ClientRepo
	MaxParty     int
}

// NewBookingHandler constructs a BookingHandler. Dependencies must be
// non-nil; maxParty caps how many people one booking may cover.
func NewBookingHandler(o *booking.Orchestrator, r *repository.ReservationRepo, c *repository.ClientRepo, maxParty int) *BookingHandler {
	if o == nil || r == nil || c == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	if maxParty < 1 {
		maxParty = 15
	}
	return &BookingHandler{Orchestrator: o, Reservations: r, Clients: c, MaxParty: maxParty}
}

type createReservationReq struct {
	TariffTier     int      `json:"tariff_tier"`
	PartySize      int      `json:"party_size"`
	Date           string   `json:"date"`       // "YYYY-MM-DD"
	StartTime      string   `json:"start_time"` // "HH:MM"
	Names          []string `json:"participant_names"`
	Emails         []string `json:"participant_emails"`
	BirthdayEmails []string `json:"birthday_emails"`
}

type invoiceLineResp struct {
	PersonName    string  `json:"person_name"`
	BaseAmount    float64 `json:"base_amount"`
	DiscountLabel string  `json:"discount_label"`
	NetAmount     float64 `json:"net_amount"`
	TaxAmount     float64 `json:"tax_amount"`
	GrossAmount   float64 `json:"gross_amount"`
	Detail        string  `json:"detail"`
}

type reservationResp struct {
	ID              uint64            `json:"id"`
	TariffTier      int               `json:"tariff_tier"`
	PartySize       int               `json:"party_size"`
	BasePrice       int               `json:"base_price"`
	DurationMinutes int               `json:"duration_minutes"`
	Date            string            `json:"date"`
	StartTime       string            `json:"start_time"`
	EndTime         string            `json:"end_time"`
	PrimaryClient   string            `json:"primary_client"`
	KartIDs         []uint64          `json:"kart_ids,omitempty"`
	NetTotal        float64           `json:"net_total"`
	TaxTotal        float64           `json:"tax_total"`
	GrossTotal      float64           `json:"gross_total"`
	Lines           []invoiceLineResp `json:"lines,omitempty"`
}

// Create handles POST /v1/reservations. The authenticated client is the
// primary participant; participant name/email lists cover the rest of the
// party and must have equal length. On success the reservation and its
// invoice are persisted as one unit, a confirmation event is published, and
// 201 is returned with the priced reservation.
func (h *BookingHandler) Create(c echo.Context) error {
	clientID, err := getClientID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !pricing.ValidTier(req.TariffTier) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tariff_tier must be 10, 15 or 20"})
	}
	if req.PartySize < 1 || req.PartySize > h.MaxParty {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("party_size must be between 1 and %d", h.MaxParty)})
	}
	if len(req.Names) != len(req.Emails) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participant name/email lists must have equal length"})
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}

	participants := make([]pricing.Participant, 0, len(req.Names))
	for i := range req.Names {
		participants = append(participants, pricing.Participant{
			Name:  strings.TrimSpace(req.Names[i]),
			Email: strings.ToLower(strings.TrimSpace(req.Emails[i])),
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	primary, err := h.Clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, booking.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	res, err := h.Orchestrator.CreateReservation(ctx, booking.Request{
		TariffTier:     req.TariffTier,
		PartySize:      req.PartySize,
		Date:           date,
		StartTime:      start,
		PrimaryEmail:   primary.Email,
		Participants:   participants,
		BirthdayEmails: req.BirthdayEmails,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot unavailable"})
		case errors.Is(err, booking.ErrInvalidTariff), errors.Is(err, booking.ErrInvalidParty):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrClientNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	// Confirmation event is best-effort: the booking stands even when the
	// broker is down.
	go publishConfirmed(res, participants, primary.Email)

	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// Get handles GET /v1/reservations/:id and returns the reservation with
// its invoice lines.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// Voucher handles GET /v1/reservations/:id/voucher and returns the plain
// text booking summary (header block plus itemized invoice).
func (h *BookingHandler) Voucher(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.String(http.StatusOK, pricing.FormatReservation(res))
}

type renameReq struct {
	PrimaryClient string `json:"primary_client"`
}

// Rename handles PATCH /v1/reservations/:id. Renaming the primary client is
// the only mutation reservations support after creation.
func (h *BookingHandler) Rename(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req renameReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PrimaryClient) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "primary_client required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.RenamePrimaryClient(ctx, id, strings.TrimSpace(req.PrimaryClient)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func toReservationResp(r *model.Reservation) reservationResp {
	resp := reservationResp{
		ID:              r.ID,
		TariffTier:      r.TariffTier,
		PartySize:       r.PartySize,
		BasePrice:       r.BasePrice,
		DurationMinutes: r.DurationMinutes,
		Date:            r.StartDate.Format("2006-01-02"),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		PrimaryClient:   r.PrimaryClient,
		KartIDs:         r.KartIDs,
	}
	if r.Invoice != nil {
		resp.NetTotal = r.Invoice.NetTotal
		resp.TaxTotal = r.Invoice.TaxTotal
		resp.GrossTotal = r.Invoice.GrossTotal
		for _, l := range r.Invoice.Lines {
			resp.Lines = append(resp.Lines, invoiceLineResp{
				PersonName:    l.PersonName,
				BaseAmount:    l.BaseAmount,
				DiscountLabel: l.DiscountLabel,
				NetAmount:     l.NetAmount,
				TaxAmount:     l.TaxAmount,
				GrossAmount:   l.GrossAmount,
				Detail:        pricing.DetailLine(l),
			})
		}
	}
	return resp
}

func publishConfirmed(res *model.Reservation, participants []pricing.Participant, primaryEmail string) {
	recipients := make([]string, 0, len(participants)+1)
	recipients = append(recipients, primaryEmail)
	for _, p := range participants {
		if p.Email != "" {
			recipients = append(recipients, p.Email)
		}
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		PrimaryClient: res.PrimaryClient,
		TariffTier:    res.TariffTier,
		PartySize:     res.PartySize,
		StartDate:     res.StartDate.Format("2006-01-02"),
		StartTime:     res.StartTime.String(),
		EndTime:       res.EndTime.String(),
		Recipients:    recipients,
		Voucher:       pricing.FormatReservation(res),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if res.Invoice != nil {
		ev.GrossTotal = res.Invoice.GrossTotal
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := queue_publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish confirmation for reservation %d failed: %v", res.ID, err)
	}
}
