package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-seat-reservation/internal/booking"
	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
	"github.com/iliyamo/restaurant-seat-reservation/internal/queue"
)

// BookingHandler serves the seat map and reservation endpoints.  Diners
// book without an account; all seat selection lives in the single Desk,
// which serializes every operation.  Events may be nil, in which case
// nothing is published.
type BookingHandler struct {
	Desk   *booking.Desk
	Events EventPublisher
}

// NewBookingHandler constructs a BookingHandler.  desk must be non-nil.
func NewBookingHandler(desk *booking.Desk, events EventPublisher) *BookingHandler {
	if desk == nil {
		panic("nil desk passed to NewBookingHandler")
	}
	return &BookingHandler{Desk: desk, Events: events}
}

type contactReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

type createReq struct {
	contactReq
	Seats []string `json:"seats"`
	Time  string   `json:"time"`
}

type slotSummary struct {
	Time      booking.TimeSlot `json:"time"`
	Booked    int              `json:"booked"`
	Available int              `json:"available"`
}

// ListSlots handles GET /v1/slots.  It returns every time slot in display
// order with its booked and available seat counts.
func (h *BookingHandler) ListSlots(c echo.Context) error {
	out := make([]slotSummary, 0, len(booking.TimeSlots))
	for _, t := range booking.TimeSlots {
		v, err := h.Desk.Seats(t)
		if err != nil {
			return bookingError(c, err)
		}
		out = append(out, slotSummary{Time: t, Booked: len(v.Booked), Available: booking.Rows*booking.Cols - len(v.Booked)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetSeats handles GET /v1/slots/:slot/seats and returns the seat map of
// the slot, including the current selection.
func (h *BookingHandler) GetSeats(c echo.Context) error {
	slot, err := booking.ParseTimeSlot(c.Param("slot"))
	if err != nil {
		return bookingError(c, err)
	}
	v, err := h.Desk.Seats(slot)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// ToggleSeat handles POST /v1/slots/:slot/seats/:seat/toggle.  Booked
// seats are left alone and reported as booked.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	slot, err := booking.ParseTimeSlot(c.Param("slot"))
	if err != nil {
		return bookingError(c, err)
	}
	seat, err := booking.ParseSeatID(c.Param("seat"))
	if err != nil {
		return bookingError(c, err)
	}
	state, v, err := h.Desk.Toggle(slot, seat)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"seat": seat, "state": state, "view": v})
}

// SubmitSelection handles POST /v1/slots/:slot/reservations.  It books the
// seats currently selected in the slot for the contact in the body.
func (h *BookingHandler) SubmitSelection(c echo.Context) error {
	slot, err := booking.ParseTimeSlot(c.Param("slot"))
	if err != nil {
		return bookingError(c, err)
	}
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	rec, err := h.Desk.Submit(c.Request().Context(), slot, booking.Contact(req))
	if err != nil {
		return bookingError(c, err)
	}
	h.publish(c, queue.EventBooked, rec)
	return c.JSON(http.StatusCreated, rec)
}

// CreateReservation handles POST /v1/reservations with an explicit seat
// list and time slot.
func (h *BookingHandler) CreateReservation(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	slot, err := booking.ParseTimeSlot(req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot", "field": "time"})
	}
	rec, err := h.Desk.Book(c.Request().Context(), slot, req.Seats, booking.Contact(req.contactReq))
	if err != nil {
		return bookingError(c, err)
	}
	h.publish(c, queue.EventBooked, rec)
	return c.JSON(http.StatusCreated, rec)
}

// ListReservations handles GET /v1/reservations: the current bookings,
// optionally narrowed to one slot with ?time=.
func (h *BookingHandler) ListReservations(c echo.Context) error {
	items := h.Desk.Active()
	if raw := c.QueryParam("time"); raw != "" {
		slot, err := booking.ParseTimeSlot(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot", "field": "time"})
		}
		items = filterReservations(items, func(r model.Reservation) bool { return r.Time == string(slot) })
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *BookingHandler) GetReservation(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	rec, err := h.Desk.Get(id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// CancelReservation handles DELETE /v1/reservations/:id.  The record is
// kept with status Canceled and its seats become available again.
func (h *BookingHandler) CancelReservation(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	rec, err := h.Desk.Cancel(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	h.publish(c, queue.EventCanceled, rec)
	return c.JSON(http.StatusOK, rec)
}

// History handles GET /v1/staff/reservations: every reservation ever
// made, canceled ones included.  ?status= and ?time= narrow the list.
func (h *BookingHandler) History(c echo.Context) error {
	items := h.Desk.History()
	if status := c.QueryParam("status"); status != "" {
		if status != model.StatusBooked && status != model.StatusCanceled {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status", "field": "status"})
		}
		items = filterReservations(items, func(r model.Reservation) bool { return r.Status == status })
	}
	if raw := c.QueryParam("time"); raw != "" {
		slot, err := booking.ParseTimeSlot(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot", "field": "time"})
		}
		items = filterReservations(items, func(r model.Reservation) bool { return r.Time == string(slot) })
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// publish sends a reservation event.  Broker failures never fail the
// request; the reservation is already stored.
func (h *BookingHandler) publish(c echo.Context, typ string, rec model.Reservation) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := h.Events.PublishReservationEvent(ctx, queue.NewReservationEvent(typ, rec)); err != nil {
		c.Logger().Warnf("publish %s event for reservation %d: %v", typ, rec.ID, err)
	}
}

func filterReservations(in []model.Reservation, keep func(model.Reservation) bool) []model.Reservation {
	out := make([]model.Reservation, 0, len(in))
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
