package admin

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/utils"
)

// PendingFacilities lists the listings waiting for review
func PendingFacilities(c *fiber.Ctx) error {
	var facilities []models.Facility
	if err := db.DB.Preload("Owner").Preload("Images").
		Where("status = ?", models.FacilityPending).
		Order("created_at ASC").
		Find(&facilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pending facilities",
		})
	}

	for i := range facilities {
		facilities[i].Owner.Password = ""
	}

	return c.JSON(facilities)
}

// SubmitReview records per-section feedback on a pending listing. The
// section set is fixed by the ReviewFeedback struct, so an unknown section
// in the payload is simply ignored by the JSON decoder.
func SubmitReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var facility models.Facility
	if err := db.DB.First(&facility, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}

	var feedback models.ReviewFeedback
	if err := c.BodyParser(&feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse review feedback",
			Error:   err.Error(),
		})
	}

	for name, section := range feedback.Sections() {
		switch section.Status {
		case "", models.SectionApproved, models.SectionNeedsChanges, models.SectionNotReviewed:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid status for section %s", name),
			})
		}
	}

	facility.Review = feedback
	if err := db.DB.Save(&facility).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save review feedback",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Review feedback saved",
		"facility": facility.ID,
		"review":   facility.Review,
	})
}

// ApproveFacility approves a pending listing and creates its default
// availability configuration so the owner can start editing the schedule.
func ApproveFacility(c *fiber.Ctx) error {
	id := c.Params("id")

	var facility models.Facility
	if err := db.DB.Preload("Owner").First(&facility, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}

	if err := facility.SetStatus(models.FacilityApproved); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot approve facility",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&facility).Error; err != nil {
			return err
		}
		// Approval seeds the availability config if none exists yet
		var cfg models.FacilityConfig
		if tx.Where("facility_id = ?", facility.ID).First(&cfg).RowsAffected == 0 {
			cfg = models.FacilityConfig{
				FacilityID:            facility.ID,
				AvailabilityIncrement: 60,
				Timezone:              "UTC",
			}
			return tx.Create(&cfg).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to approve facility",
			Error:   err.Error(),
		})
	}

	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your listing <strong>%s</strong> has been approved and is now live.</p>
		<p>Set up your weekly schedule and availability to start receiving bookings.</p>
		<p>Best regards,<br>The Facility Rental Team</p>
	`, facility.Owner.Name, facility.Name)
	if err := utils.SendEmail(facility.Owner.Email, "Listing Approved", emailBody); err != nil {
		fmt.Println("Failed to send approval email:", err)
	}

	return c.JSON(fiber.Map{
		"message":  "Facility approved",
		"facility": facility,
	})
}

// RejectFacility rejects a pending listing, mailing the section feedback to
// the owner.
func RejectFacility(c *fiber.Ctx) error {
	id := c.Params("id")

	var facility models.Facility
	if err := db.DB.Preload("Owner").First(&facility, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}

	if err := facility.SetStatus(models.FacilityRejected); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot reject facility",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(&facility).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reject facility",
		})
	}

	feedbackList := ""
	for name, section := range facility.Review.Sections() {
		if section.Status == models.SectionNeedsChanges {
			feedbackList += fmt.Sprintf("<li><strong>%s:</strong> %s</li>", name, section.Comments)
		}
	}

	emailBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your listing <strong>%s</strong> was not approved.</p>
		<p><strong>Reviewer feedback:</strong></p>
		<ul>%s</ul>
		<p>Update the listing and it will be re-reviewed automatically.</p>
		<p>Best regards,<br>The Facility Rental Team</p>
	`, facility.Owner.Name, facility.Name, feedbackList)
	if err := utils.SendEmail(facility.Owner.Email, "Listing Needs Changes", emailBody); err != nil {
		fmt.Println("Failed to send rejection email:", err)
	}

	return c.JSON(fiber.Map{
		"message":  "Facility rejected",
		"facility": facility,
	})
}

// CreateHolidayTemplate seeds a named holiday calendar owners can apply
func CreateHolidayTemplate(c *fiber.Ctx) error {
	type TemplateInput struct {
		Name   string `json:"name"`
		Region string `json:"region"`
		Year   int    `json:"year"`
		Dates  []struct {
			Date  string `json:"date"` // "YYYY-MM-DD"
			Label string `json:"label"`
		} `json:"dates"`
	}

	input := new(TemplateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Name == "" || len(input.Dates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and at least one date are required",
		})
	}

	template := models.HolidayTemplate{
		Name:   input.Name,
		Region: input.Region,
		Year:   input.Year,
	}
	for _, d := range input.Dates {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid date %q, use YYYY-MM-DD", d.Date),
			})
		}
		template.Dates = append(template.Dates, models.HolidayTemplateDate{
			Date:  date,
			Label: d.Label,
		})
	}

	if err := db.DB.Create(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create holiday template",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(template)
}
