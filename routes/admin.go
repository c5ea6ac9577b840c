package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/controllers/admin"
	"github.com/facilityhub/facility-rental-app/middleware"
)

// SetupAdminRoutes configures the listing review routes
func SetupAdminRoutes(app *fiber.App) {
	a := app.Group("/admin", middleware.Protected(), middleware.RequireRole("admin"))

	// Listing review queue
	a.Get("/facilities/pending", admin.PendingFacilities)
	a.Post("/facilities/:id/review", admin.SubmitReview)
	a.Post("/facilities/:id/approve", admin.ApproveFacility)
	a.Post("/facilities/:id/reject", admin.RejectFacility)

	// Holiday calendars
	a.Post("/holiday-templates", admin.CreateHolidayTemplate)
}
