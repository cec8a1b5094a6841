package model

import "time"

// Kart is an inventory entry in the kart catalog. The core tracks identity
// only; no per-kart scheduling state is kept here.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – short unit code painted on the kart (e.g. "K01").
//  Model     – manufacturer model name.
//  IsActive  – whether the unit is available for allocation.
//  CreatedAt – creation timestamp.
type Kart struct {
	ID        uint64    // karts.id
	Code      string    // karts.code
	Model     string    // karts.model
	IsActive  bool      // karts.is_active
	CreatedAt time.Time // karts.created_at
}
