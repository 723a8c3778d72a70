package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-seat-reservation/internal/booking"
	"github.com/iliyamo/restaurant-seat-reservation/internal/queue"
)

// EventPublisher delivers reservation events to the message broker.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, ev queue.ReservationEvent) error
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// bookingError translates errors from the booking package into the JSON
// error responses used across the API.
func bookingError(c echo.Context, err error) error {
	var (
		ve *booking.ValidationError
		ce *booking.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	case errors.As(err, &ce):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seats already booked", "unavailable": booking.SeatStrings(ce.Seats)})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrAlreadyCanceled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already canceled"})
	case errors.Is(err, booking.ErrUnknownSlot):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown time slot"})
	case errors.Is(err, booking.ErrSeatOutOfRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat out of range"})
	case errors.Is(err, booking.ErrPersistence):
		c.Logger().Errorf("booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	c.Logger().Errorf("booking: unexpected error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
