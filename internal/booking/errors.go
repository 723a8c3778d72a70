// Package booking implements the seat availability and booking workflow:
// per-time-slot seat grids with selection toggling, the reservation store
// with its derived booked-seat index, and the desk that ties both
// together for a single device.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.  Handlers translate these into HTTP statuses with
// errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("reservation not found")
	ErrAlreadyCanceled = errors.New("reservation already canceled")
	ErrConflict        = errors.New("seats already booked")
	ErrPersistence     = errors.New("persistence failed")
	ErrUnknownSlot     = errors.New("unknown time slot")
	ErrSeatOutOfRange  = errors.New("seat out of range")
)

// ValidationError describes which input of a reservation request was
// rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }

// ConflictError lists the submitted seats that an active reservation
// already holds for the slot.
type ConflictError struct {
	Slot  TimeSlot
	Seats []SeatID
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Seats))
	for i, s := range e.Seats {
		ids[i] = s.String()
	}
	return fmt.Sprintf("%s at %s: %s", ErrConflict, e.Slot, strings.Join(ids, ","))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// PersistenceError wraps a failed storage write.  When it is returned
// the in-memory records and index are unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
