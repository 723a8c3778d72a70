package booking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Every time slot has the same fixed seating layout.
const (
	Rows = 4
	Cols = 5
)

// SeatID identifies a seat by its 1-indexed row and column.
type SeatID struct {
	Row int
	Col int
}

// String renders the wire form "{row}-{col}".
func (s SeatID) String() string { return strconv.Itoa(s.Row) + "-" + strconv.Itoa(s.Col) }

// Valid reports whether the seat lies inside the Rows x Cols grid.
func (s SeatID) Valid() bool {
	return s.Row >= 1 && s.Row <= Rows && s.Col >= 1 && s.Col <= Cols
}

func (s SeatID) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SeatID) UnmarshalText(b []byte) error {
	id, err := ParseSeatID(string(b))
	if err != nil {
		return err
	}
	*s = id
	return nil
}

// ParseSeatID parses "{row}-{col}".  Surrounding whitespace is ignored.
// Malformed input and seats outside the grid return an error wrapping
// ErrSeatOutOfRange.
func ParseSeatID(raw string) (SeatID, error) {
	row, col, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return SeatID{}, fmt.Errorf("%w: %q", ErrSeatOutOfRange, raw)
	}
	r, err1 := strconv.Atoi(strings.TrimSpace(row))
	c, err2 := strconv.Atoi(strings.TrimSpace(col))
	if err1 != nil || err2 != nil {
		return SeatID{}, fmt.Errorf("%w: %q", ErrSeatOutOfRange, raw)
	}
	id := SeatID{Row: r, Col: c}
	if !id.Valid() {
		return SeatID{}, fmt.Errorf("%w: %q", ErrSeatOutOfRange, raw)
	}
	return id, nil
}

// uniqueSeats drops repeated seats, keeping the first occurrence.
func uniqueSeats(ids []SeatID) []SeatID {
	seen := make(map[SeatID]struct{}, len(ids))
	out := make([]SeatID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// sortSeats orders seats row-major.
func sortSeats(ids []SeatID) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Row != ids[j].Row {
			return ids[i].Row < ids[j].Row
		}
		return ids[i].Col < ids[j].Col
	})
}

// SeatStrings converts seats to their wire form, preserving order.
func SeatStrings(ids []SeatID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
