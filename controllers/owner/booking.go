package owner

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/utils"
)

// ListFacilityBookings returns bookings for one of the owner's facilities
func ListFacilityBookings(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var bookings []models.Booking
	query := db.DB.Preload("Renter").Where("facility_id = ?", facility.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("rental_date ASC, start_time ASC").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	for i := range bookings {
		bookings[i].Renter.Password = ""
	}

	return c.JSON(bookings)
}

// UpdateBookingStatus lets the owner confirm, complete, or cancel a booking
// on one of their facilities.
func UpdateBookingStatus(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(uint)
	id := c.Params("id")

	type StatusInput struct {
		Status models.BookingStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Facility").Preload("Renter").First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.Facility.OwnerID != ownerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Booking is not for one of your facilities",
		})
	}

	if err := booking.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Invalid status change",
			Error:   err.Error(),
		})
	}

	// Notify the renter of the decision
	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking %s for <strong>%s</strong> is now <strong>%s</strong>.</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>
		<p>Best regards,<br>The Facility Rental Team</p>
	`, booking.Renter.Name, booking.Reference, booking.Facility.Name, booking.Status,
		booking.RentalDate.Format("2006-01-02"), booking.StartTime, booking.EndTime)
	if err := utils.SendEmail(booking.Renter.Email, "Booking "+string(booking.Status), emailBody); err != nil {
		fmt.Println("Failed to send booking status email:", err)
	}

	return c.JSON(booking)
}
