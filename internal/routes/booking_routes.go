package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"soulboard/internal/booking"
	"soulboard/internal/chain"
	"soulboard/internal/handlers"
	"soulboard/internal/repository"
)

func RegisterBookingRoutes(router chi.Router, db *sql.DB, ledger *booking.Ledger, chainClient chain.Client) {
	locationRepo := repository.NewLocationRepository(db)
	bookingHandler := handlers.NewBookingHandler(ledger, locationRepo, chainClient)

	router.Route("/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)
		r.Post("/", bookingHandler.CreateBooking)
		r.Route("/{locationID}", func(r chi.Router) {
			r.Delete("/", bookingHandler.RemoveBooking)
			r.Post("/attach", bookingHandler.AttachBooking)
		})
	})
}
