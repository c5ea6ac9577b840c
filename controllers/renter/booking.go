package renter

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/availability"
	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/utils"
)

// CreateBooking books a facility for a date, start time, and duration. The
// requested window is validated against the resolved availability, then the
// insert re-checks for conflicting bookings under a row lock so two renters
// cannot take the same slot.
func CreateBooking(c *fiber.Ctx) error {
	renterID := c.Locals("userID").(uint)

	type BookingInput struct {
		FacilityID uint   `json:"facility_id"`
		RentalDate string `json:"rental_date"` // "YYYY-MM-DD"
		StartTime  string `json:"start_time"`  // "HH:MM"
		Duration   int    `json:"duration"`    // minutes
		Notes      string `json:"notes"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.RentalDate == "" || input.StartTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rental_date and start_time are required",
		})
	}
	date, err := time.Parse(availability.DateFormat, input.RentalDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rental_date format, use YYYY-MM-DD",
		})
	}

	var facility models.Facility
	if err := db.DB.First(&facility, input.FacilityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}
	if facility.Status != models.FacilityApproved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}

	// The facility must be open for the whole requested window
	window, err := availabilityService().ValidateBookingWindow(facility.ID, date, input.StartTime, input.Duration)
	if err != nil {
		if errors.Is(err, availability.ErrValidation) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Requested time is not available",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error checking availability",
			Error:   err.Error(),
		})
	}

	booking := models.Booking{
		Reference:  utils.GenerateBookingRef(),
		FacilityID: facility.ID,
		RenterID:   renterID,
		RentalDate: date,
		StartTime:  availability.FormatClock(window.Start),
		EndTime:    availability.FormatClock(window.End),
		Duration:   input.Duration,
		TotalPrice: availability.QuotePrice(facility.Price, facility.PriceUnit, input.Duration),
		Status:     models.StatusPending,
		Notes:      input.Notes,
	}

	// Create the booking, guarding against a concurrent booking of the same
	// window
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		free, err := utils.CheckBookingConflict(tx, facility.ID, date, booking.StartTime, booking.EndTime)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("time slot is already booked")
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available or failed to create booking",
			Error:   err.Error(),
		})
	}

	// Find the renter and owner to send emails
	var renter models.User
	if err := db.DB.First(&renter, renterID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Renter not found",
			Error:   err.Error(),
		})
	}
	var owner models.User
	if err := db.DB.First(&owner, facility.OwnerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Owner not found",
			Error:   err.Error(),
		})
	}

	// Send confirmation email
	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking request has been received.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Facility:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Total:</strong> %.2f</li>
		</ul>
		<p>You will be notified once the owner confirms.</p>
		<p>Best regards,<br>The Facility Rental Team</p>
	`, renter.Name, booking.Reference, facility.Name,
		booking.RentalDate.Format("2006-01-02"), booking.StartTime, booking.EndTime,
		booking.TotalPrice)
	if err := utils.SendEmail(renter.Email, "Booking Request Received", emailBody); err != nil {
		fmt.Println("Failed to send booking email to renter:", err)
	}

	// Mail to facility owner
	emailBody = fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new booking request for <strong>%s</strong>.</p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Renter:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>
		<p>Please confirm or decline from your dashboard.</p>
		<p>Best regards,<br>The Facility Rental Team</p>
	`, owner.Name, facility.Name, booking.Reference, renter.Name,
		booking.RentalDate.Format("2006-01-02"), booking.StartTime, booking.EndTime)
	if err := utils.SendEmail(owner.Email, "New Booking Request", emailBody); err != nil {
		fmt.Println("Failed to send booking email to owner:", err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ListMyBookings returns the renter's bookings
func ListMyBookings(c *fiber.Ctx) error {
	renterID := c.Locals("userID").(uint)

	var bookings []models.Booking
	if err := db.DB.Preload("Facility").
		Where("renter_id = ?", renterID).
		Order("rental_date DESC, start_time DESC").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}

	return c.JSON(bookings)
}

// GetBooking returns one of the renter's bookings
func GetBooking(c *fiber.Ctx) error {
	renterID := c.Locals("userID").(uint)
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.Preload("Facility").First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.RenterID != renterID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Booking does not belong to you",
		})
	}

	return c.JSON(booking)
}

// CancelBooking cancels a pending or confirmed booking before its date
func CancelBooking(c *fiber.Ctx) error {
	renterID := c.Locals("userID").(uint)
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.Preload("Facility").First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if booking.RenterID != renterID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Booking does not belong to you",
		})
	}

	// No cancellations once the rental date has passed
	today := time.Now().Format(availability.DateFormat)
	if booking.RentalDate.Format(availability.DateFormat) < today {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot cancel a past booking",
		})
	}

	if err := booking.UpdateStatus(db.DB, models.StatusCanceled); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot cancel this booking",
			Error:   err.Error(),
		})
	}

	return c.JSON(booking)
}
