package renter

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
)

// ListFacilities returns approved facilities with pagination
func ListFacilities(c *fiber.Ctx) error {
	var facilities []models.Facility

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	// Calculate offset
	offset := (page - 1) * limit

	query := db.DB.Preload("Images").Where("status = ?", models.FacilityApproved)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Limit(limit).Offset(offset).Find(&facilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch facilities",
		})
	}

	// Count total records for pagination
	var count int64
	db.DB.Model(&models.Facility{}).
		Where("status = ?", models.FacilityApproved).
		Count(&count)

	return c.JSON(fiber.Map{
		"facilities": facilities,
		"total":      count,
		"page":       page,
		"limit":      limit,
		"pages":      (int(count) + limit - 1) / limit,
	})
}

// GetFacility returns details for one approved facility
func GetFacility(c *fiber.Ctx) error {
	id := c.Params("id")

	var facility models.Facility
	if err := db.DB.Preload("Images").Preload("Owner").
		First(&facility, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}

	// Unapproved listings are invisible to renters
	if facility.Status != models.FacilityApproved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Facility not found",
		})
	}

	// Remove sensitive information
	facility.Owner.Password = ""
	facility.Review = models.ReviewFeedback{}

	return c.JSON(facility)
}

// SearchFacilities searches approved facilities by name, description, or city
func SearchFacilities(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	var facilities []models.Facility
	searchQuery := fmt.Sprintf("%%%s%%", query)

	if err := db.DB.Preload("Images").
		Where("status = ? AND (name ILIKE ? OR description ILIKE ? OR city ILIKE ?)",
			models.FacilityApproved, searchQuery, searchQuery, searchQuery).
		Find(&facilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search facilities",
		})
	}

	return c.JSON(fiber.Map{
		"facilities": facilities,
		"count":      len(facilities),
	})
}

// FeaturedFacilities returns a short list of highlighted facilities
func FeaturedFacilities(c *fiber.Ctx) error {
	var facilities []models.Facility

	if err := db.DB.Preload("Images").
		Where("status = ?", models.FacilityApproved).
		Order("created_at DESC").
		Limit(10).
		Find(&facilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch featured facilities",
		})
	}

	return c.JSON(fiber.Map{
		"facilities": facilities,
	})
}
