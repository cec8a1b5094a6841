// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is successfully
// created. It carries the voucher text so downstream consumers (mail,
// notification, analytics) can act without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64   `json:"reservation_id"`
	PrimaryClient string   `json:"primary_client"`
	TariffTier    int      `json:"tariff_tier"`
	PartySize     int      `json:"party_size"`
	StartDate     string   `json:"start_date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	GrossTotal    float64  `json:"gross_total"`
	Recipients    []string `json:"recipients"`
	Voucher       string   `json:"voucher"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
