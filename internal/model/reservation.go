package model

import (
	"strings"
	"time"
)

// Reservation status values.  A reservation is created Booked and may
// move to Canceled exactly once; canceled rows are kept for history.
const (
	StatusBooked   = "Booked"
	StatusCanceled = "Canceled"
)

// Reservation records a diner's booking of one or more seats at a time
// slot.  It corresponds to a row in the `reservations` table.
//
// Fields:
//  ID        – primary key identifier.
//  Seats     – seat identifiers ("row-col"), de-duplicated, in the order
//              they were chosen.  Stored comma-joined in reservations.seats.
//  Time      – time slot label, e.g. "12:30 PM".
//  Name      – full name of the diner (required).
//  Phone     – contact phone number, digits only (required).
//  Note      – optional special request.
//  Status    – Booked or Canceled.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64    `json:"id"`         // reservations.id
	Seats     []string  `json:"seats"`      // reservations.seats
	Time      string    `json:"time"`       // reservations.time_slot
	Name      string    `json:"name"`       // reservations.name
	Phone     string    `json:"phone"`      // reservations.phone
	Note      string    `json:"note"`       // reservations.note
	Status    string    `json:"status"`     // reservations.status
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
	UpdatedAt time.Time `json:"updated_at"` // reservations.updated_at
}

// Active reports whether the reservation still holds its seats.
func (r Reservation) Active() bool { return r.Status == StatusBooked }

// Clone returns a copy that does not share the Seats backing array.
func (r Reservation) Clone() Reservation {
	out := r
	out.Seats = append([]string(nil), r.Seats...)
	return out
}

// JoinSeats encodes seat identifiers for the reservations.seats column.
func JoinSeats(seats []string) string { return strings.Join(seats, ",") }

// SplitSeats decodes a reservations.seats value.  Whitespace around each
// identifier is dropped, as are empty entries, so "1-3, 2-4" and
// "1-3,2-4" decode identically.
func SplitSeats(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
