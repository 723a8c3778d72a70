package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// Contact is what a diner fills in before confirming a booking.
type Contact struct {
	Name  string
	Phone string
	Note  string
}

// SlotView is a rendering of one slot: the seat map plus the current
// selection and the seats held by active reservations.
type SlotView struct {
	Slot     TimeSlot      `json:"slot"`
	Rows     [][]SeatState `json:"rows"`
	Selected []SeatID      `json:"selected"`
	Booked   []SeatID      `json:"booked"`
}

// Desk is the booking screen of one device: a seat grid hydrated from
// a reservation store.  Every method holds the desk lock for its whole
// duration, so operations run one at a time and to completion.
type Desk struct {
	mu    sync.Mutex
	grid  *Grid
	store *Store
}

// NewDesk wraps store with a fresh grid.  Call Bootstrap before serving.
func NewDesk(store *Store) *Desk {
	if store == nil {
		panic("nil store passed to NewDesk")
	}
	return &Desk{grid: NewGrid(), store: store}
}

// Bootstrap loads persisted reservations and hydrates every slot from
// the rebuilt index.
func (d *Desk) Bootstrap(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.store.Load(ctx); err != nil {
		return err
	}
	for _, t := range TimeSlots {
		d.hydrate(t)
	}
	return nil
}

func (d *Desk) hydrate(slot TimeSlot) {
	d.grid.Hydrate(slot, SeatStrings(d.store.BookedSeatIDs(slot)))
}

// Seats renders slot.
func (d *Desk) Seats(slot TimeSlot) (SlotView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slot.Valid() {
		return SlotView{}, ErrUnknownSlot
	}
	return d.view(slot), nil
}

func (d *Desk) view(slot TimeSlot) SlotView {
	return SlotView{
		Slot:     slot,
		Rows:     d.grid.Snapshot(slot),
		Selected: d.grid.SelectedSeats(slot),
		Booked:   d.store.BookedSeatIDs(slot),
	}
}

// Toggle flips the selection of seat in slot and returns the new view.
func (d *Desk) Toggle(slot TimeSlot, seat SeatID) (SeatState, SlotView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, err := d.grid.Toggle(slot, seat.Row, seat.Col)
	if err != nil {
		return st, SlotView{}, err
	}
	return st, d.view(slot), nil
}

// Submit books the seats currently selected in slot.  On success the
// selection is cleared and the seats show as booked.  On a conflict the
// slot is re-hydrated so the grid reflects the seats already taken.
func (d *Desk) Submit(ctx context.Context, slot TimeSlot, c Contact) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slot.Valid() {
		return model.Reservation{}, ErrUnknownSlot
	}
	seats := SeatStrings(d.grid.SelectedSeats(slot))
	rec, err := d.store.Create(ctx, seats, slot, c.Name, c.Phone, c.Note)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			d.hydrate(slot)
		}
		return rec, err
	}
	d.grid.ClearSelection(slot)
	d.hydrate(slot)
	return rec, nil
}

// Book creates a reservation for an explicit list of seats, bypassing
// the grid selection.  Any of those seats selected on this device are
// dropped from the selection once booked.
func (d *Desk) Book(ctx context.Context, slot TimeSlot, seats []string, c Contact) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, err := d.store.Create(ctx, seats, slot, c.Name, c.Phone, c.Note)
	if err != nil {
		return rec, err
	}
	d.hydrate(slot)
	return rec, nil
}

// Cancel cancels a reservation and frees its seats on the grid.
func (d *Desk) Cancel(ctx context.Context, id uint64) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, err := d.store.Cancel(ctx, id)
	if err != nil {
		return rec, err
	}
	d.hydrate(TimeSlot(rec.Time))
	return rec, nil
}

// Active lists current bookings.
func (d *Desk) Active() []model.Reservation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.ActiveReservations()
}

// History lists every reservation ever made, canceled ones included.
func (d *Desk) History() []model.Reservation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.History()
}

// Get returns one reservation.
func (d *Desk) Get(id uint64) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Get(id)
}
