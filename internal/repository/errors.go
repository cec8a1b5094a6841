// Package repository implements the storage collaborators over MySQL: the
// reservation store (reservations, invoices, invoice lines, allocated
// karts), the client directory and the kart catalog. Sentinel errors are
// defined here so handlers can distinguish failure kinds with errors.Is.
package repository

import "errors"

// ErrEmailExists is returned when registering a client whose normalized
// email is already taken. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup by id matches no row. Handlers
// translate this into HTTP 404.
var ErrNotFound = errors.New("not found")
