package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/controllers/owner"
	"github.com/facilityhub/facility-rental-app/middleware"
)

// SetupOwnerRoutes configures all facility owner routes
func SetupOwnerRoutes(app *fiber.App) {
	o := app.Group("/owner", middleware.Protected(), middleware.RequireRole("owner", "admin"))

	// Facility listings
	o.Post("/facilities", owner.CreateFacility)
	o.Get("/facilities", owner.ListMyFacilities)
	o.Get("/facilities/:id", owner.GetMyFacility)
	o.Patch("/facilities/:id", owner.UpdateFacility)
	o.Delete("/facilities/:id", owner.DeleteFacility)
	o.Post("/facilities/:id/photos", owner.UploadFacilityPhotos)

	// Weekly schedule
	o.Get("/facilities/:id/schedule", owner.GetWeeklySchedule)
	o.Put("/facilities/:id/schedule", owner.ReplaceWeeklySchedule)

	// Date exceptions
	o.Get("/facilities/:id/exceptions", owner.ListExceptions)
	o.Post("/facilities/:id/exceptions", owner.CreateException)
	o.Delete("/facilities/:id/exceptions/:exceptionId", owner.DeleteException)

	// Availability config
	o.Get("/facilities/:id/config", owner.GetAvailabilityConfig)
	o.Patch("/facilities/:id/config", owner.UpdateAvailabilityConfig)

	// Holiday templates
	o.Get("/holiday-templates", owner.ListHolidayTemplates)
	o.Post("/facilities/:id/holiday-templates/:templateId", owner.ApplyHolidayTemplate)

	// Bookings on owned facilities
	o.Get("/facilities/:id/bookings", owner.ListFacilityBookings)
	o.Patch("/bookings/:id/status", owner.UpdateBookingStatus)
}
