// Package booking contains the reservation orchestrator: the single
// creation path that validates a request, checks availability, prices the
// party, allocates karts and persists the reservation together with its
// invoice. Business rule violations are sentinel errors, not panics, so
// handlers can map each kind to an HTTP status explicitly.
package booking

import "errors"

// ErrSlotUnavailable is returned when a conflicting reservation already
// exists for the requested date and time. Nothing is written.
var ErrSlotUnavailable = errors.New("slot unavailable")

// ErrInvalidTariff is returned when the tariff tier is outside the closed
// set {10, 15, 20}. The original system silently priced these at zero; the
// single creation path rejects them instead (decision recorded in
// DESIGN.md).
var ErrInvalidTariff = errors.New("invalid tariff tier")

// ErrInvalidParty is returned when the party size is below 1 or does not
// fit the kart fleet.
var ErrInvalidParty = errors.New("invalid party size")

// ErrClientNotFound is returned when the primary client's email has no
// directory entry. Missing entries for birthday candidates are never an
// error; those candidates simply lose eligibility.
var ErrClientNotFound = errors.New("client not found")

// ErrInvalidRange is returned by range queries when the start date is after
// the end date, before any store access.
var ErrInvalidRange = errors.New("invalid date range")
