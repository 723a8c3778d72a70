package booking

import "fmt"

// SeatState is the display state of one seat in one slot.  Selected is
// local to the grid and never persisted.
type SeatState int

const (
	Available SeatState = iota
	Selected
	Booked
)

func (s SeatState) String() string {
	switch s {
	case Available:
		return "available"
	case Selected:
		return "selected"
	case Booked:
		return "booked"
	}
	return fmt.Sprintf("SeatState(%d)", int(s))
}

func (s SeatState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type slotGrid [Rows][Cols]SeatState

// Grid holds the seat states of every time slot together with the
// ordered list of seats selected in each slot.  Slots are independent:
// changing one never touches another.  A Grid is not safe for
// concurrent use.
type Grid struct {
	seats    map[TimeSlot]*slotGrid
	selected map[TimeSlot][]SeatID
}

// NewGrid returns a grid with every seat of every slot Available.
func NewGrid() *Grid {
	g := &Grid{
		seats:    make(map[TimeSlot]*slotGrid, len(TimeSlots)),
		selected: make(map[TimeSlot][]SeatID, len(TimeSlots)),
	}
	for _, t := range TimeSlots {
		g.seats[t] = new(slotGrid)
	}
	return g
}

// Hydrate resets slot to Available everywhere and marks the given seats
// Booked.  Identifiers that do not parse or fall outside the grid are
// skipped, so malformed persisted data cannot break the grid.  Seats
// still selected in the slot stay Selected unless they are now booked,
// in which case they are dropped from the selection.  Unknown slots are
// ignored.
func (g *Grid) Hydrate(slot TimeSlot, booked []string) {
	sg, ok := g.seats[slot]
	if !ok {
		return
	}
	*sg = slotGrid{}
	for _, raw := range booked {
		id, err := ParseSeatID(raw)
		if err != nil {
			continue
		}
		sg[id.Row-1][id.Col-1] = Booked
	}
	kept := g.selected[slot][:0]
	for _, id := range g.selected[slot] {
		if sg[id.Row-1][id.Col-1] == Booked {
			continue
		}
		sg[id.Row-1][id.Col-1] = Selected
		kept = append(kept, id)
	}
	g.selected[slot] = kept
}

// Toggle flips a seat between Available and Selected and returns its new
// state.  Booked seats are not interactive: the call is a no-op and
// returns Booked.  An unknown slot or a seat outside the grid is
// rejected without touching any state.
func (g *Grid) Toggle(slot TimeSlot, row, col int) (SeatState, error) {
	sg, ok := g.seats[slot]
	if !ok {
		return Available, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	id := SeatID{Row: row, Col: col}
	if !id.Valid() {
		return Available, fmt.Errorf("%w: %s", ErrSeatOutOfRange, id)
	}
	cell := &sg[row-1][col-1]
	switch *cell {
	case Available:
		*cell = Selected
		g.selected[slot] = append(g.selected[slot], id)
	case Selected:
		*cell = Available
		g.selected[slot] = removeSeat(g.selected[slot], id)
	}
	return *cell, nil
}

// SelectedSeats returns the seats selected in slot, in selection order.
func (g *Grid) SelectedSeats(slot TimeSlot) []SeatID {
	return append([]SeatID(nil), g.selected[slot]...)
}

// ClearSelection returns every selected seat of slot to Available.
func (g *Grid) ClearSelection(slot TimeSlot) {
	sg, ok := g.seats[slot]
	if !ok {
		return
	}
	for _, id := range g.selected[slot] {
		if sg[id.Row-1][id.Col-1] == Selected {
			sg[id.Row-1][id.Col-1] = Available
		}
	}
	g.selected[slot] = nil
}

// State returns the state of a single seat.
func (g *Grid) State(slot TimeSlot, row, col int) (SeatState, error) {
	sg, ok := g.seats[slot]
	if !ok {
		return Available, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	if !(SeatID{Row: row, Col: col}).Valid() {
		return Available, fmt.Errorf("%w: %d-%d", ErrSeatOutOfRange, row, col)
	}
	return sg[row-1][col-1], nil
}

// Snapshot copies the states of slot as rows of columns.  It returns nil
// for an unknown slot.
func (g *Grid) Snapshot(slot TimeSlot) [][]SeatState {
	sg, ok := g.seats[slot]
	if !ok {
		return nil
	}
	out := make([][]SeatState, Rows)
	for r := range out {
		out[r] = append([]SeatState(nil), sg[r][:]...)
	}
	return out
}

func removeSeat(ids []SeatID, id SeatID) []SeatID {
	for i, s := range ids {
		if s == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
