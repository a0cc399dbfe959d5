package wire

import (
	"villa-rental/internal/adaptor"
	"villa-rental/pkg/middleware"
	"villa-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/villas/{id}/booked-dates - Date ranges already taken (public)
	r.Get("/api/villas/{id}/booked-dates", bookingHandler.GetBookedDates)

	// ==================== USER ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.User(config.JWT.Secret, log))

		r.Post("/", bookingHandler.CreateBooking)       // Create booking, price computed server side
		r.Get("/", bookingHandler.GetUserBookings)      // GET /api/bookings?page=1&per_page=10
		r.Get("/{id}", bookingHandler.GetBookingByID)   // Booking details
		r.Put("/{id}", bookingHandler.UpdateBooking)    // Update dates, guests or status
		r.Delete("/{id}", bookingHandler.DeleteBooking) // Delete booking and its payments
	})

	// ==================== ADMIN ROUTES ====================
	// GET /api/admin/bookings - All bookings (admin)
	r.With(middleware.Admin(config.JWT.Secret, log)).
		Get("/api/admin/bookings", bookingHandler.GetBookings)
}
