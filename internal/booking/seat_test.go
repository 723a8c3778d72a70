package booking

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSeatID(t *testing.T) {
	cases := []struct {
		in   string
		want SeatID
		ok   bool
	}{
		{"1-1", SeatID{1, 1}, true},
		{" 4-5 ", SeatID{4, 5}, true},
		{"2 - 3", SeatID{2, 3}, true},
		{"0-1", SeatID{}, false},
		{"5-1", SeatID{}, false},
		{"1-6", SeatID{}, false},
		{"1_1", SeatID{}, false},
		{"a-b", SeatID{}, false},
		{"", SeatID{}, false},
	}
	for _, tc := range cases {
		got, err := ParseSeatID(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParseSeatID(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrSeatOutOfRange) {
			t.Errorf("ParseSeatID(%q) err = %v; want ErrSeatOutOfRange", tc.in, err)
		}
	}
}

func TestSeatIDText(t *testing.T) {
	s := SeatID{Row: 3, Col: 2}
	b, _ := s.MarshalText()
	if string(b) != "3-2" {
		t.Fatalf("MarshalText = %q", b)
	}
	var back SeatID
	if err := back.UnmarshalText(b); err != nil || back != s {
		t.Fatalf("UnmarshalText = %v, %v", back, err)
	}
	if err := back.UnmarshalText([]byte("9-9")); err == nil {
		t.Fatal("UnmarshalText accepted a seat outside the grid")
	}
}

func TestUniqueSeatsKeepsFirstOccurrence(t *testing.T) {
	in := []SeatID{{2, 3}, {1, 1}, {2, 3}, {1, 1}, {4, 4}}
	want := []SeatID{{2, 3}, {1, 1}, {4, 4}}
	if got := uniqueSeats(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("uniqueSeats = %v, want %v", got, want)
	}
}
