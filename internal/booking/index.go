package booking

import "github.com/iliyamo/restaurant-seat-reservation/internal/model"

// Index is the booked-seat index: for every slot, how many active
// reservations claim each seat.  A seat is unavailable while its count
// is positive.  Counting claims (rather than keeping a plain set) keeps
// the index equal to the union of active reservations even when legacy
// data holds two active claims on one seat and only one is released.
type Index map[TimeSlot]map[SeatID]int

// BuildIndex derives the index from persisted reservations.  Only Booked
// records contribute; unknown slots and malformed seat identifiers are
// skipped.  The result does not depend on record order.
func BuildIndex(records []model.Reservation) Index {
	ix := make(Index, len(TimeSlots))
	for _, r := range records {
		if !r.Active() {
			continue
		}
		slot := TimeSlot(r.Time)
		if !slot.Valid() {
			continue
		}
		ix.claim(slot, parseStoredSeats(r.Seats))
	}
	return ix
}

func (ix Index) claim(slot TimeSlot, seats []SeatID) {
	m := ix[slot]
	if m == nil {
		m = make(map[SeatID]int)
		ix[slot] = m
	}
	for _, s := range seats {
		m[s]++
	}
}

func (ix Index) release(slot TimeSlot, seats []SeatID) {
	m := ix[slot]
	for _, s := range seats {
		if m[s] <= 1 {
			delete(m, s)
			continue
		}
		m[s]--
	}
}

// Contains reports whether seat is claimed at slot.
func (ix Index) Contains(slot TimeSlot, seat SeatID) bool { return ix[slot][seat] > 0 }

// Seats returns the claimed seats of slot in row-major order.
func (ix Index) Seats(slot TimeSlot) []SeatID {
	out := make([]SeatID, 0, len(ix[slot]))
	for s := range ix[slot] {
		out = append(out, s)
	}
	sortSeats(out)
	return out
}

// parseStoredSeats reads seat identifiers from a persisted record,
// dropping malformed ones and repeats.
func parseStoredSeats(raw []string) []SeatID {
	out := make([]SeatID, 0, len(raw))
	for _, r := range raw {
		if id, err := ParseSeatID(r); err == nil {
			out = append(out, id)
		}
	}
	return uniqueSeats(out)
}
