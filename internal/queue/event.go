// Package queue defines the reservation event payload exchanged over
// RabbitMQ and the background consumer that records those events.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// Event types.
const (
    EventBooked   = "booked"
    EventCanceled = "canceled"
)

// ReservationEvent is published after a reservation is created or
// canceled.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationEvent struct {
    EventID       string    `json:"event_id"`
    Type          string    `json:"type"`
    ReservationID uint64    `json:"reservation_id"`
    Time          string    `json:"time"`
    Seats         []string  `json:"seats"`
    Name          string    `json:"name"`
    OccurredAt    time.Time `json:"occurred_at"`
}

// NewReservationEvent describes r under a fresh event ID.  Phone numbers
// and notes stay out of the event.
func NewReservationEvent(typ string, r model.Reservation) ReservationEvent {
    return ReservationEvent{
        EventID:       uuid.NewString(),
        Type:          typ,
        ReservationID: r.ID,
        Time:          r.Time,
        Seats:         append([]string(nil), r.Seats...),
        Name:          r.Name,
        OccurredAt:    time.Now().UTC(),
    }
}
