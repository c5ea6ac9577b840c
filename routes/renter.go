package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/controllers/renter"
	"github.com/facilityhub/facility-rental-app/middleware"
)

// SetupRenterRoutes configures the public catalog and renter booking routes
func SetupRenterRoutes(app *fiber.App) {
	// Public catalog, browsing needs no account
	facilities := app.Group("/facilities")
	facilities.Get("/", renter.ListFacilities)
	facilities.Get("/search", renter.SearchFacilities)
	facilities.Get("/featured", renter.FeaturedFacilities)
	facilities.Get("/:id", renter.GetFacility)
	facilities.Get("/:id/availability", renter.GetAvailability)
	facilities.Get("/:id/slots", renter.GetSlots)
	facilities.Get("/:id/quote", renter.GetQuote)

	// Bookings require a signed-in renter
	bookings := app.Group("/bookings", middleware.Protected())
	bookings.Post("/", renter.CreateBooking)
	bookings.Get("/", renter.ListMyBookings)
	bookings.Get("/:id", renter.GetBooking)
	bookings.Post("/:id/cancel", renter.CancelBooking)
}
