package model

import "time"

// Client mirrors the `clients` table. Clients authenticate against the API
// and accumulate a monthly visit counter that feeds the frequency discount.
// The counter resets whenever a login or booking lands in a different
// month/year than the last recorded activity.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name used on invoices.
//  Email         – unique, normalized (lower-case) email address.
//  PasswordHash  – bcrypt hashed password.
//  Role          – CUSTOMER or EMPLOYEE.
//  Birthday      – date of birth; nil when not on file. Only the month and
//                  day are compared for the birthday discount.
//  MonthlyVisits – visits within the current month.
//  LastLoginAt   – last login date, used for the monthly reset.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Client struct {
	ID            uint64     // clients.id
	Name          string     // clients.name
	Email         string     // clients.email
	PasswordHash  string     // clients.password_hash
	Role          string     // clients.role
	Birthday      *time.Time // clients.birthday (nullable)
	MonthlyVisits int        // clients.monthly_visits
	LastLoginAt   *time.Time // clients.last_login_at (nullable)
	CreatedAt     time.Time  // clients.created_at
	UpdatedAt     time.Time  // clients.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  ClientID  – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – creation timestamp.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	ClientID  uint64     // refresh_tokens.client_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
