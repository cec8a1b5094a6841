package model

import "time"

// Reservation records a timed booking of the track for a party of people.
// Each reservation owns exactly one Invoice (created and persisted together
// with the reservation) and references the karts allocated to the party.
//
// Fields:
//  ID              – primary key identifier.
//  TariffTier      – lap-count/time-limit category (10, 15 or 20).
//  PartySize       – number of people included in the booking.
//  BasePrice       – per-person list price derived from the tariff and date.
//  DurationMinutes – total track time derived from the tariff.
//  CreatedAt       – when the booking was made (informational).
//  StartDate       – calendar date the party will ride.
//  StartTime       – start of the reserved slot.
//  EndTime         – end of the slot (StartTime + DurationMinutes).
//  PrimaryClient   – name of the client who made the booking.
//  KartIDs         – karts allocated to the party (catalog references).
//  Invoice         – itemized pricing result, owned by the reservation.
type Reservation struct {
	ID              uint64    // reservations.id
	TariffTier      int       // reservations.tariff_tier
	PartySize       int       // reservations.party_size
	BasePrice       int       // reservations.base_price
	DurationMinutes int       // reservations.duration_minutes
	CreatedAt       time.Time // reservations.created_at
	StartDate       time.Time // reservations.start_date (date only)
	StartTime       TimeOfDay // reservations.start_time
	EndTime         TimeOfDay // reservations.end_time
	PrimaryClient   string    // reservations.primary_client
	KartIDs         []uint64  // reservation_karts.kart_id
	Invoice         *Invoice  // owned; nil only for legacy rows
}

// Slot returns the reserved [StartTime, EndTime) interval.
func (r *Reservation) Slot() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}
