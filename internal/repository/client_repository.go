package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/booking"
	"github.com/iliyamo/kart-track-reservation/internal/model"
	"github.com/iliyamo/kart-track-reservation/internal/utils"
)

// ClientRepo mirrors the `clients` table and implements the client
// directory used by the booking orchestrator: lookup by email, birthday
// on file, and the monthly visit counter.
type ClientRepo struct{ DB *sql.DB }

// NewClientRepo returns a ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

const clientColumns = `id, name, email, password_hash, role, birthday,
       monthly_visits, last_login_at, created_at, updated_at`

// Create inserts a client with a bcrypt-hashed password and returns its ID.
// Duplicate emails map to ErrEmailExists.
func (r *ClientRepo) Create(ctx context.Context, name, email, password, role string, birthday *time.Time, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var bday interface{}
	if birthday != nil {
		bday = birthday.Format("2006-01-02")
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (name, email, password_hash, role, birthday, monthly_visits) VALUES (?,?,?,?,?,0)",
		name, email, hash, role, bday)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByEmail fetches a client by normalized email. A miss is reported as
// booking.ErrClientNotFound so the orchestrator can treat it as
// "not eligible" rather than a storage failure.
func (r *ClientRepo) FindByEmail(ctx context.Context, email string) (*model.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE email=? LIMIT 1", email))
}

// GetByID fetches a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (*model.Client, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id=? LIMIT 1", id))
}

// SetMonthlyVisits overwrites the client's visit counter. The orchestrator
// passes the post-reset value plus one after each successful booking.
func (r *ClientRepo) SetMonthlyVisits(ctx context.Context, clientID uint64, visits int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET monthly_visits=? WHERE id=?", visits, clientID)
	return err
}

// TouchLogin records a login: when the previous login fell in a different
// month/year the visit counter starts over, mirroring the monthly
// frequency reset.
func (r *ClientRepo) TouchLogin(ctx context.Context, c *model.Client, now time.Time) error {
	visits := c.MonthlyVisits
	if c.LastLoginAt == nil || c.LastLoginAt.Month() != now.Month() || c.LastLoginAt.Year() != now.Year() {
		visits = 0
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET monthly_visits=?, last_login_at=? WHERE id=?",
		visits, now.Format("2006-01-02"), c.ID)
	if err == nil {
		c.MonthlyVisits = visits
		t := now
		c.LastLoginAt = &t
	}
	return err
}

func (r *ClientRepo) scanOne(row *sql.Row) (*model.Client, error) {
	var c model.Client
	var birthday, lastLogin sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Role,
		&birthday, &c.MonthlyVisits, &lastLogin, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, booking.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	if birthday.Valid {
		t := birthday.Time
		c.Birthday = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		c.LastLoginAt = &t
	}
	return &c, nil
}
