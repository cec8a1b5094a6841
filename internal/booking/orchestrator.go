package booking

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/model"
	"github.com/iliyamo/kart-track-reservation/internal/pricing"
	"github.com/iliyamo/kart-track-reservation/internal/schedule"
)

// ReservationStore persists reservations together with their invoices.
// Save must re-check the slot for overlap inside its own transaction and
// return ErrSlotUnavailable on conflict: the orchestrator's advisory check
// and the insert are not atomic by construction, so the store is the
// serialization point that closes the check-then-act race.
type ReservationStore interface {
	FindOverlapping(ctx context.Context, date time.Time, start, end model.TimeOfDay) ([]model.Interval, error)
	FindByDate(ctx context.Context, date time.Time) ([]model.Reservation, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]model.Reservation, error)
	Save(ctx context.Context, r *model.Reservation) error
}

// ClientDirectory looks up clients by email and tracks their monthly visit
// counters. A lookup miss must be reported as ErrClientNotFound.
type ClientDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.Client, error)
	SetMonthlyVisits(ctx context.Context, clientID uint64, visits int) error
}

// KartCatalog lists the units available for allocation.
type KartCatalog interface {
	ListAvailable(ctx context.Context) ([]model.Kart, error)
}

// Orchestrator wires the availability and pricing engines to the store
// collaborators. It owns the single reservation creation path.
type Orchestrator struct {
	store   ReservationStore
	clients ClientDirectory
	karts   KartCatalog
	now     func() time.Time
}

// NewOrchestrator builds an Orchestrator. All collaborators must be non-nil.
func NewOrchestrator(store ReservationStore, clients ClientDirectory, karts KartCatalog) *Orchestrator {
	if store == nil || clients == nil || karts == nil {
		panic("nil collaborator passed to NewOrchestrator")
	}
	return &Orchestrator{store: store, clients: clients, karts: karts, now: time.Now}
}

// Request is the validated input for one booking. Participants lists every
// person in the party except the primary client, in request order; that
// order is preserved on the invoice. BirthdayEmails are unfiltered
// candidates; the orchestrator checks them against the directory.
type Request struct {
	TariffTier     int
	PartySize      int
	Date           time.Time
	StartTime      model.TimeOfDay
	PrimaryEmail   string
	Participants   []pricing.Participant
	BirthdayEmails []string
}

// CreateReservation runs the full creation path: frequency reset, birthday
// filtering, price/duration derivation, conflict check, kart allocation,
// invoice computation and the single persisted write, then bumps the
// primary client's visit counter. It returns the persisted reservation or
// one of the package's sentinel errors with no partial writes. The counter
// bump after the save is best-effort; once the reservation is committed it
// is reported as created.
func (o *Orchestrator) CreateReservation(ctx context.Context, req Request) (*model.Reservation, error) {
	if !pricing.ValidTier(req.TariffTier) {
		return nil, ErrInvalidTariff
	}
	if req.PartySize < 1 {
		return nil, ErrInvalidParty
	}

	primary, err := o.clients.FindByEmail(ctx, req.PrimaryEmail)
	if err != nil {
		return nil, err
	}

	// Frequency counts visits within the booking month: when the booking
	// lands in a different month/year than now, the counter starts over.
	now := o.now()
	visits := primary.MonthlyVisits
	if now.Month() != req.Date.Month() || now.Year() != req.Date.Year() {
		visits = 0
	}

	birthdays := o.filterBirthdays(ctx, req.BirthdayEmails, req.Date)

	basePrice, duration := pricing.BaseAndDuration(req.TariffTier, req.Date)
	endTime := req.StartTime.Add(duration)

	existing, err := o.store.FindOverlapping(ctx, req.Date, req.StartTime, endTime)
	if err != nil {
		return nil, err
	}
	if schedule.Conflicts(req.StartTime, endTime, existing) {
		return nil, ErrSlotUnavailable
	}

	fleet, err := o.karts.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(fleet) < req.PartySize {
		return nil, ErrInvalidParty
	}
	kartIDs := make([]uint64, req.PartySize)
	for i := 0; i < req.PartySize; i++ {
		kartIDs[i] = fleet[i].ID
	}

	prim := pricing.Participant{Name: primary.Name, Email: primary.Email}
	invoice := pricing.ComputeInvoice(basePrice, req.PartySize, visits, prim, req.Participants, birthdays)

	res := &model.Reservation{
		TariffTier:      req.TariffTier,
		PartySize:       req.PartySize,
		BasePrice:       basePrice,
		DurationMinutes: duration,
		CreatedAt:       now,
		StartDate:       req.Date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		PrimaryClient:   primary.Name,
		KartIDs:         kartIDs,
		Invoice:         invoice,
	}
	if err := o.store.Save(ctx, res); err != nil {
		return nil, err
	}

	// The reservation is committed at this point; a failed counter update
	// must not turn a persisted booking into a reported failure. The
	// counter self-corrects on the client's next login.
	if err := o.clients.SetMonthlyVisits(ctx, primary.ID, visits+1); err != nil {
		log.Printf("booking: update visit counter for client %d failed: %v", primary.ID, err)
	}
	return res, nil
}

// filterBirthdays keeps only the candidate emails whose directory entry
// exists, has a birthday on file, and whose birthday month/day match the
// booking date. Directory misses are never a hard failure.
func (o *Orchestrator) filterBirthdays(ctx context.Context, candidates []string, date time.Time) map[string]struct{} {
	eligible := make(map[string]struct{}, len(candidates))
	for _, email := range candidates {
		c, err := o.clients.FindByEmail(ctx, email)
		if err != nil || c.Birthday == nil {
			continue
		}
		if c.Birthday.Month() == date.Month() && c.Birthday.Day() == date.Day() {
			eligible[email] = struct{}{}
		}
	}
	return eligible
}

// OccupiedSlots returns every booked interval grouped by date, rendered as
// "HH:MM - HH:MM" strings, over the given range.
func (o *Orchestrator) OccupiedSlots(ctx context.Context, from, to time.Time) (map[string][]string, error) {
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	reservations, err := o.store.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string][]string)
	for i := range reservations {
		r := &reservations[i]
		key := r.StartDate.Format("2006-01-02")
		occupied[key] = append(occupied[key], r.Slot().String())
	}
	return occupied, nil
}
