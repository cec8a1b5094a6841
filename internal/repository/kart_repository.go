package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// KartRepo mirrors the `karts` table and implements the kart catalog.
type KartRepo struct{ DB *sql.DB }

// NewKartRepo returns a KartRepo bound to the given database.
func NewKartRepo(db *sql.DB) *KartRepo { return &KartRepo{DB: db} }

// ListAvailable returns the active karts ordered by id. The orchestrator
// allocates the first party-size units from this list.
func (r *KartRepo) ListAvailable(ctx context.Context) ([]model.Kart, error) {
	const q = `SELECT id, code, model, is_active, created_at FROM karts
               WHERE is_active = 1 ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	karts := make([]model.Kart, 0)
	for rows.Next() {
		var k model.Kart
		if err := rows.Scan(&k.ID, &k.Code, &k.Model, &k.IsActive, &k.CreatedAt); err != nil {
			return nil, err
		}
		karts = append(karts, k)
	}
	return karts, rows.Err()
}

// Create inserts a catalog entry and returns its ID.
func (r *KartRepo) Create(ctx context.Context, code, modelName string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO karts (code, model, is_active) VALUES (?,?,1)", code, modelName)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SetActive flips a unit in or out of the allocatable fleet.
func (r *KartRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE karts SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
