package booking

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

func newTestDesk(t *testing.T, seed ...model.Reservation) *Desk {
	t.Helper()
	d := NewDesk(NewStore(NewMemoryPersister(seed...)))
	if err := d.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return d
}

func TestDeskSubmitSelection(t *testing.T) {
	ctx := context.Background()
	d := newTestDesk(t, model.Reservation{
		ID: 1, Seats: []string{"1-1", "1-2"}, Time: string(Slot1000AM), Name: "Bob", Phone: "1", Status: model.StatusBooked,
	})

	v, _ := d.Seats(Slot1000AM)
	if v.Rows[0][0] != Booked || v.Rows[0][1] != Booked || v.Rows[0][2] != Available {
		t.Fatalf("first row = %v", v.Rows[0])
	}

	st, v, err := d.Toggle(Slot1000AM, SeatID{1, 3})
	if err != nil || st != Selected {
		t.Fatalf("Toggle = %s, %v", st, err)
	}
	if !reflect.DeepEqual(v.Selected, []SeatID{{1, 3}}) {
		t.Fatalf("selected = %v", v.Selected)
	}

	rec, err := d.Submit(ctx, Slot1000AM, Contact{Name: "Alice", Phone: "0401234567"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !reflect.DeepEqual(rec.Seats, []string{"1-3"}) {
		t.Fatalf("seats = %v", rec.Seats)
	}
	v, _ = d.Seats(Slot1000AM)
	if len(v.Selected) != 0 || v.Rows[0][2] != Booked {
		t.Fatalf("after submit: selected=%v row=%v", v.Selected, v.Rows[0])
	}

	if _, err := d.Cancel(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	v, _ = d.Seats(Slot1000AM)
	if v.Rows[0][2] != Available {
		t.Fatalf("1-3 after cancel = %s", v.Rows[0][2])
	}
	if !reflect.DeepEqual(SeatStrings(v.Booked), []string{"1-1", "1-2"}) {
		t.Fatalf("booked = %v", v.Booked)
	}
}

func TestDeskSubmitEmptySelection(t *testing.T) {
	d := newTestDesk(t)
	_, err := d.Submit(context.Background(), Slot0300PM, Contact{Name: "A", Phone: "1"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if len(d.History()) != 0 {
		t.Fatal("record created")
	}
}

func TestDeskSubmitKeepsSelectionOnValidationError(t *testing.T) {
	d := newTestDesk(t)
	d.Toggle(Slot0530PM, SeatID{2, 2})
	if _, err := d.Submit(context.Background(), Slot0530PM, Contact{Name: "", Phone: "1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	v, _ := d.Seats(Slot0530PM)
	if !reflect.DeepEqual(v.Selected, []SeatID{{2, 2}}) {
		t.Fatalf("selection lost: %v", v.Selected)
	}
}

func TestDeskBookDropsConflictingSelection(t *testing.T) {
	ctx := context.Background()
	d := newTestDesk(t)
	d.Toggle(Slot0800PM, SeatID{1, 1})
	d.Toggle(Slot0800PM, SeatID{1, 2})

	if _, err := d.Book(ctx, Slot0800PM, []string{"1-2"}, Contact{Name: "B", Phone: "2"}); err != nil {
		t.Fatal(err)
	}
	v, _ := d.Seats(Slot0800PM)
	if !reflect.DeepEqual(v.Selected, []SeatID{{1, 1}}) {
		t.Fatalf("selected = %v", v.Selected)
	}
	_, err := d.Book(ctx, Slot0800PM, []string{"1-2"}, Contact{Name: "C", Phone: "3"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeskUnknownSlot(t *testing.T) {
	d := newTestDesk(t)
	if _, err := d.Seats(TimeSlot("noon")); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("Seats err = %v", err)
	}
	if _, err := d.Submit(context.Background(), TimeSlot("noon"), Contact{}); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("Submit err = %v", err)
	}
}

func TestDeskConcurrentBookingsNeverDoubleBook(t *testing.T) {
	ctx := context.Background()
	d := newTestDesk(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Book(ctx, Slot1230PM, []string{"2-2", "2-3"}, Contact{Name: "X", Phone: "1"}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("%d bookings succeeded for the same seats", wins)
	}
	if n := len(d.Active()); n != 1 {
		t.Fatalf("%d active reservations", n)
	}
}
