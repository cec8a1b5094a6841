package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// ReservationRepo persists reservations and their owned invoices. A
// reservation row, its invoice, the invoice lines and the allocated kart
// references are always written in one transaction; a reservation is never
// partially persisted. All date and time-of-day columns are stored as DATE
// and TIME and read back as strings.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const overlapQuery = `SELECT start_time, end_time FROM reservations
               WHERE start_date = ? AND start_time < ? AND end_time > ?`

// FindOverlapping returns the intervals of reservations on the given date
// that overlap the half-open [start, end) slot. Touching boundaries do not
// match.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, date time.Time, start, end model.TimeOfDay) ([]model.Interval, error) {
	rows, err := r.db.QueryContext(ctx, overlapQuery,
		date.Format("2006-01-02"), end.String(), start.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntervals(rows)
}

// FindByDate returns the reservations starting on the given date, ordered
// by start time ascending. Invoices are not hydrated; availability sweeps
// only need the intervals.
func (r *ReservationRepo) FindByDate(ctx context.Context, date time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, tariff_tier, party_size, base_price, duration_minutes,
                      created_at, start_date, start_time, end_time, primary_client
               FROM reservations
               WHERE start_date = ?
               ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// FindByDateRange returns the reservations within [from, to] inclusive,
// each hydrated with its invoice and lines, ordered by date then start
// time. The report aggregator depends on invoices being present.
func (r *ReservationRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, tariff_tier, party_size, base_price, duration_minutes,
                      created_at, start_date, start_time, end_time, primary_client
               FROM reservations
               WHERE start_date BETWEEN ? AND ?
               ORDER BY start_date ASC, start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	reservations, err := scanReservations(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return reservations, nil
	}
	if err := r.attachInvoices(ctx, reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetByID returns one reservation with its invoice, lines and kart ids.
// ErrNotFound is returned when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, tariff_tier, party_size, base_price, duration_minutes,
                      created_at, start_date, start_time, end_time, primary_client
               FROM reservations WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	reservations, err := scanReservations(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrNotFound
	}
	if err := r.attachInvoices(ctx, reservations); err != nil {
		return nil, err
	}
	res := &reservations[0]

	const kartQ = `SELECT kart_id FROM reservation_karts WHERE reservation_id = ? ORDER BY kart_id`
	krows, err := r.db.QueryContext(ctx, kartQ, id)
	if err != nil {
		return nil, err
	}
	defer krows.Close()
	for krows.Next() {
		var kid uint64
		if err := krows.Scan(&kid); err != nil {
			return nil, err
		}
		res.KartIDs = append(res.KartIDs, kid)
	}
	if err := krows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Save inserts the reservation, its invoice, the invoice lines and the
// kart references in one transaction. Before inserting it re-runs the
// overlap query with FOR UPDATE so that two concurrent bookings on the
// same slot serialize on the row locks; the loser gets
// booking.ErrSlotUnavailable and nothing is written. On success the
// generated ids are populated on the passed model.
func (r *ReservationRepo) Save(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Overlap re-check under lock. The engine already rejected conflicts
	// visible at check time; this closes the window between check and insert.
	rows, err := tx.QueryContext(ctx, overlapQuery+" FOR UPDATE",
		res.StartDate.Format("2006-01-02"), res.EndTime.String(), res.StartTime.String())
	if err != nil {
		return err
	}
	overlapping, err := scanIntervals(rows)
	rows.Close()
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return booking.ErrSlotUnavailable
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (tariff_tier, party_size, base_price, duration_minutes,
		                           created_at, start_date, start_time, end_time, primary_client)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		res.TariffTier, res.PartySize, res.BasePrice, res.DurationMinutes,
		res.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		res.StartDate.Format("2006-01-02"), res.StartTime.String(), res.EndTime.String(),
		res.PrimaryClient)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	if res.Invoice != nil {
		inv := res.Invoice
		invResult, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (reservation_id, net_total, tax_total, gross_total) VALUES (?,?,?,?)`,
			res.ID, inv.NetTotal, inv.TaxTotal, inv.GrossTotal)
		if err != nil {
			return err
		}
		invID, err := invResult.LastInsertId()
		if err != nil {
			return err
		}
		inv.ID = uint64(invID)

		if len(inv.Lines) > 0 {
			q := `INSERT INTO invoice_lines (invoice_id, position, person_name, base_amount,
			                                 discount_label, net_amount, tax_amount, gross_amount) VALUES `
			args := make([]interface{}, 0, len(inv.Lines)*8)
			for i, l := range inv.Lines {
				if i > 0 {
					q += ","
				}
				q += "(?,?,?,?,?,?,?,?)"
				args = append(args, inv.ID, i, l.PersonName, l.BaseAmount,
					l.DiscountLabel, l.NetAmount, l.TaxAmount, l.GrossAmount)
			}
			if _, err := tx.ExecContext(ctx, q, args...); err != nil {
				return err
			}
		}
	}

	if len(res.KartIDs) > 0 {
		q := `INSERT INTO reservation_karts (reservation_id, kart_id) VALUES `
		args := make([]interface{}, 0, len(res.KartIDs)*2)
		for i, kid := range res.KartIDs {
			if i > 0 {
				q += ","
			}
			q += "(?,?)"
			args = append(args, res.ID, kid)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// RenamePrimaryClient updates the display name on an existing reservation.
// This is the only mutation allowed after creation.
func (r *ReservationRepo) RenamePrimaryClient(ctx context.Context, id uint64, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET primary_client = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// attachInvoices hydrates invoices and their lines for the given
// reservations with two IN-clause queries.
func (r *ReservationRepo) attachInvoices(ctx context.Context, reservations []model.Reservation) error {
	ids := make([]interface{}, 0, len(reservations))
	placeholders := make([]string, 0, len(reservations))
	index := make(map[uint64]int, len(reservations))
	for i := range reservations {
		ids = append(ids, reservations[i].ID)
		placeholders = append(placeholders, "?")
		index[reservations[i].ID] = i
	}

	invQ := `SELECT id, reservation_id, net_total, tax_total, gross_total
             FROM invoices WHERE reservation_id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, invQ, ids...)
	if err != nil {
		return err
	}
	invIndex := make(map[uint64]*model.Invoice)
	for rows.Next() {
		var inv model.Invoice
		var resID uint64
		if err := rows.Scan(&inv.ID, &resID, &inv.NetTotal, &inv.TaxTotal, &inv.GrossTotal); err != nil {
			rows.Close()
			return err
		}
		if i, ok := index[resID]; ok {
			reservations[i].Invoice = &inv
			invIndex[inv.ID] = reservations[i].Invoice
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if len(invIndex) == 0 {
		return nil
	}
	invIDs := make([]interface{}, 0, len(invIndex))
	invPh := make([]string, 0, len(invIndex))
	for id := range invIndex {
		invIDs = append(invIDs, id)
		invPh = append(invPh, "?")
	}
	lineQ := `SELECT id, invoice_id, person_name, base_amount, discount_label,
                     net_amount, tax_amount, gross_amount
              FROM invoice_lines WHERE invoice_id IN (` + strings.Join(invPh, ",") + `)
              ORDER BY invoice_id, position`
	lrows, err := r.db.QueryContext(ctx, lineQ, invIDs...)
	if err != nil {
		return err
	}
	defer lrows.Close()
	for lrows.Next() {
		var l model.InvoiceLine
		var invID uint64
		if err := lrows.Scan(&l.ID, &invID, &l.PersonName, &l.BaseAmount, &l.DiscountLabel,
			&l.NetAmount, &l.TaxAmount, &l.GrossAmount); err != nil {
			return err
		}
		if inv, ok := invIndex[invID]; ok {
			inv.Lines = append(inv.Lines, l)
		}
	}
	return lrows.Err()
}

// scanIntervals reads (start_time, end_time) string pairs.
func scanIntervals(rows *sql.Rows) ([]model.Interval, error) {
	var out []model.Interval
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return nil, err
		}
		start, err := model.ParseTimeOfDay(startStr)
		if err != nil {
			return nil, err
		}
		end, err := model.ParseTimeOfDay(endStr)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Interval{Start: start, End: end})
	}
	return out, rows.Err()
}

// scanReservations reads full reservation rows (without invoices).
func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		var startStr, endStr string
		// created_at and start_date arrive as time.Time (parseTime=true in
		// the DSN); TIME columns arrive as strings.
		if err := rows.Scan(&res.ID, &res.TariffTier, &res.PartySize, &res.BasePrice,
			&res.DurationMinutes, &res.CreatedAt, &res.StartDate, &startStr, &endStr,
			&res.PrimaryClient); err != nil {
			return nil, err
		}
		var err error
		if res.StartTime, err = model.ParseTimeOfDay(startStr); err != nil {
			return nil, err
		}
		if res.EndTime, err = model.ParseTimeOfDay(endStr); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
