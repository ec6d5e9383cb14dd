package router

import (
	"github.com/labstack/echo/v4"

	"github.com/9santoshki/saloon-reservation/internal/handler"
	"github.com/9santoshki/saloon-reservation/internal/middleware"
)

// RegisterReservations registers the reservation ledger endpoints under
// /api/reservations.  Every route requires a valid JWT; reads are scoped
// to the path user (admins excepted) and cancellation to the booking user
// inside the handlers.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/api/reservations",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "store_owner"),
	)
	g.GET("/:userId", r.ListReservations)
	g.GET("/:userId/:reservationId", r.GetReservation)
	g.POST("", r.CreateReservation)
	g.PUT("/:reservationId/cancel", r.CancelReservation)
}
