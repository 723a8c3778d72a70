package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-seat-reservation/internal/handler"
	"github.com/iliyamo/restaurant-seat-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// RegisterBooking registers the seat selection and reservation endpoints
// under /v1.  Diners book anonymously, so reads are open; every write goes
// through limiter when one is configured.
//
// The full history, canceled records included, is staff only and is
// mounted only when jwtSecret is set.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc, jwtSecret string) {
	var write []echo.MiddlewareFunc
	if limiter != nil {
		write = append(write, limiter)
	}

	g := e.Group("/v1")
	g.GET("/slots", h.ListSlots)
	g.GET("/slots/:slot/seats", h.GetSeats)
	g.POST("/slots/:slot/seats/:seat/toggle", h.ToggleSeat, write...)
	g.POST("/slots/:slot/reservations", h.SubmitSelection, write...)

	g.POST("/reservations", h.CreateReservation, write...)
	g.GET("/reservations", h.ListReservations)
	g.GET("/reservations/:id", h.GetReservation)
	g.DELETE("/reservations/:id", h.CancelReservation, write...)

	if jwtSecret == "" {
		return
	}
	staff := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff, model.RoleManager),
	)
	staff.GET("/reservations", h.History)
}
