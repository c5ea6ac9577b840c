package owner

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/redis"
	"github.com/facilityhub/facility-rental-app/utils"
)

// ListHolidayTemplates returns the named holiday calendars owners can apply
func ListHolidayTemplates(c *fiber.Ctx) error {
	var templates []models.HolidayTemplate
	if err := db.DB.Preload("Dates").Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch holiday templates",
		})
	}
	return c.JSON(templates)
}

// ApplyHolidayTemplate bulk-creates whole-day blocking exceptions from a
// holiday calendar. Applying the same template twice is a no-op.
func ApplyHolidayTemplate(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	templateID, err := strconv.ParseUint(c.Params("templateId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid template id",
		})
	}

	var template models.HolidayTemplate
	if err := db.DB.Preload("Dates").First(&template, templateID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Holiday template not found",
		})
	}

	// Already applied?
	var existing models.FacilityHoliday
	if db.DB.Where("facility_id = ? AND template_id = ?", facility.ID, template.ID).
		First(&existing).RowsAffected > 0 {
		return c.JSON(fiber.Map{
			"message": "Holiday template already applied",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, date := range template.Dates {
			exc := models.AvailabilityException{
				FacilityID:    facility.ID,
				ExceptionDate: date.Date,
				IsAvailable:   false,
				ExceptionType: models.ExceptionHoliday,
				Notes:         date.Label,
			}
			if err := tx.Create(&exc).Error; err != nil {
				return err
			}
		}
		return tx.Create(&models.FacilityHoliday{
			FacilityID: facility.ID,
			TemplateID: template.ID,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to apply holiday template",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(facility.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Holiday template applied",
		"template": template.Name,
		"dates":    len(template.Dates),
	})
}
