// Package repository holds the MySQL-backed stores used by the service:
// reservations (the durable side of the booking store), staff accounts and
// their refresh tokens.  The sentinel values below let handlers tell
// different failure scenarios apart.
package repository

import "errors"

// ErrNotFound is returned when an update targets a row that does not
// exist.  Lookups that scan a single row return sql.ErrNoRows instead.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by StaffRepo.Create when the email is
// already registered.  Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")
