package booking

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// Persister is the durable table of reservations.  Store writes through
// it before touching any in-memory state.
type Persister interface {
	// InsertReservation stores a new record and fills in its ID and
	// timestamps.
	InsertReservation(ctx context.Context, r *model.Reservation) error
	// UpdateReservationStatus sets the status of an existing record.
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
	// ListReservations returns every record, canceled ones included, in
	// insertion order.
	ListReservations(ctx context.Context) ([]model.Reservation, error)
}

// Store owns the reservation records and the booked-seat index derived
// from them.  The records are the single source of truth; the index is
// rebuilt on Load and maintained incrementally by Create and Cancel,
// always after the persister has confirmed the write.  A Store is not
// safe for concurrent use; Desk serializes access.
type Store struct {
	p       Persister
	records []model.Reservation
	byID    map[uint64]int
	index   Index
}

// NewStore returns an empty store writing through p.  Call Load to pick
// up previously persisted records.
func NewStore(p Persister) *Store {
	if p == nil {
		panic("nil persister passed to NewStore")
	}
	return &Store{p: p, byID: make(map[uint64]int), index: make(Index)}
}

// Load replaces the in-memory records with the persisted ones and
// rebuilds the index.  On error the previous state is kept.
func (s *Store) Load(ctx context.Context) error {
	recs, err := s.p.ListReservations(ctx)
	if err != nil {
		return &PersistenceError{Op: "list reservations", Err: err}
	}
	byID := make(map[uint64]int, len(recs))
	records := make([]model.Reservation, 0, len(recs))
	for _, r := range recs {
		r = r.Clone()
		byID[r.ID] = len(records)
		records = append(records, r)
	}
	s.records, s.byID, s.index = records, byID, BuildIndex(records)
	return nil
}

// Create books seats at slot for the given contact.  Seats are
// de-duplicated keeping first occurrence order.  It fails with a
// *ValidationError when seats, name or phone is empty, a seat is not in
// the grid, or slot is unknown, and with a *ConflictError when an active
// reservation already holds any of the seats.  A failed storage write
// returns a *PersistenceError.  In every failure case nothing changes.
func (s *Store) Create(ctx context.Context, seats []string, slot TimeSlot, name, phone, note string) (model.Reservation, error) {
	if !slot.Valid() {
		return model.Reservation{}, invalid("time", "is not a known time slot")
	}
	ids := make([]SeatID, 0, len(seats))
	for _, raw := range seats {
		id, err := ParseSeatID(raw)
		if err != nil {
			return model.Reservation{}, invalid("seats", "contains "+strconv.Quote(raw)+" which is not a seat")
		}
		ids = append(ids, id)
	}
	ids = uniqueSeats(ids)
	if len(ids) == 0 {
		return model.Reservation{}, invalid("seats", "must not be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Reservation{}, invalid("name", "must not be empty")
	}
	phone = DigitsOnly(phone)
	if phone == "" {
		return model.Reservation{}, invalid("phone", "must not be empty")
	}

	var taken []SeatID
	for _, id := range ids {
		if s.index.Contains(slot, id) {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		return model.Reservation{}, &ConflictError{Slot: slot, Seats: taken}
	}

	rec := model.Reservation{
		Seats:  SeatStrings(ids),
		Time:   string(slot),
		Name:   name,
		Phone:  phone,
		Note:   strings.TrimSpace(note),
		Status: model.StatusBooked,
	}
	if err := s.p.InsertReservation(ctx, &rec); err != nil {
		return model.Reservation{}, &PersistenceError{Op: "insert reservation", Err: err}
	}
	s.byID[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	s.index.claim(slot, ids)
	return rec.Clone(), nil
}

// Cancel moves an active reservation to Canceled and releases its seats
// at its slot.  Only this record's claims are released.  Canceling an
// unknown record returns ErrNotFound; canceling a canceled one returns
// ErrAlreadyCanceled rather than succeeding silently.
func (s *Store) Cancel(ctx context.Context, id uint64) (model.Reservation, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}
	rec := &s.records[i]
	if !rec.Active() {
		return model.Reservation{}, ErrAlreadyCanceled
	}
	if err := s.p.UpdateReservationStatus(ctx, id, model.StatusCanceled); err != nil {
		return model.Reservation{}, &PersistenceError{Op: "cancel reservation", Err: err}
	}
	rec.Status = model.StatusCanceled
	s.index.release(TimeSlot(rec.Time), parseStoredSeats(rec.Seats))
	return rec.Clone(), nil
}

// Get returns the record with the given id, canceled or not.
func (s *Store) Get(id uint64) (model.Reservation, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}
	return s.records[i].Clone(), nil
}

// ActiveReservations returns the Booked records in insertion order.
func (s *Store) ActiveReservations() []model.Reservation {
	out := make([]model.Reservation, 0, len(s.records))
	for _, r := range s.records {
		if r.Active() {
			out = append(out, r.Clone())
		}
	}
	return out
}

// History returns every record, canceled ones included, in insertion
// order.
func (s *Store) History() []model.Reservation {
	out := make([]model.Reservation, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out
}

// BookedSeatIDs returns the seats held by active reservations at slot,
// row-major.
func (s *Store) BookedSeatIDs(slot TimeSlot) []SeatID { return s.index.Seats(slot) }

// DigitsOnly strips every non-digit from a phone number.  Digits of any
// script are kept.
func DigitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}
