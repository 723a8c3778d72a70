package booking

import (
	"fmt"
	"net/url"
	"strings"
)

// TimeSlot is one of the fixed seating times offered each day.
type TimeSlot string

const (
	Slot1000AM TimeSlot = "10:00 AM"
	Slot1230PM TimeSlot = "12:30 PM"
	Slot0300PM TimeSlot = "3:00 PM"
	Slot0530PM TimeSlot = "5:30 PM"
	Slot0800PM TimeSlot = "8:00 PM"
)

// TimeSlots lists the bookable slots in display order.
var TimeSlots = []TimeSlot{Slot1000AM, Slot1230PM, Slot0300PM, Slot0530PM, Slot0800PM}

// Valid reports whether t is one of TimeSlots.
func (t TimeSlot) Valid() bool {
	for _, s := range TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}

func (t TimeSlot) String() string { return string(t) }

// ParseTimeSlot resolves a slot label as it may arrive in a URL path or
// a form: percent-escaping, letter case and spacing are ignored, so
// "10%3A00%20AM", "10:00am" and "10:00 AM" all name Slot1000AM.
func ParseTimeSlot(raw string) (TimeSlot, error) {
	if u, err := url.PathUnescape(raw); err == nil {
		raw = u
	}
	key := slotKey(raw)
	for _, s := range TimeSlots {
		if slotKey(string(s)) == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
}

func slotKey(s string) string {
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '+' {
			return -1
		}
		return r
	}, s)
}
