package owner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/utils"
)

// findOwnedFacility loads a facility by route param and checks it belongs to
// the authenticated owner.
func findOwnedFacility(c *fiber.Ctx) (*models.Facility, error) {
	ownerID := c.Locals("userID").(uint)
	id := c.Params("id")

	var facility models.Facility
	if err := db.DB.First(&facility, id).Error; err != nil {
		return nil, fmt.Errorf("facility not found")
	}
	if facility.OwnerID != ownerID {
		return nil, fmt.Errorf("facility does not belong to you")
	}
	return &facility, nil
}

// CreateFacility creates a new facility listing in pending status
func CreateFacility(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(uint)

	facility := new(models.Facility)
	if err := c.BodyParser(facility); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if facility.Name == "" || facility.Address == "" || facility.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, address and city are required",
		})
	}
	if facility.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price must be greater than zero",
		})
	}
	switch facility.PriceUnit {
	case "", models.PricePerHour, models.PricePerDay, models.PricePerSession:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid price unit",
		})
	}

	facility.OwnerID = ownerID
	facility.Status = models.FacilityPending

	if err := db.DB.Create(facility).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create facility",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(facility)
}

// ListMyFacilities returns the owner's facilities with their review status
func ListMyFacilities(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(uint)

	var facilities []models.Facility
	if err := db.DB.Preload("Images").
		Where("owner_id = ?", ownerID).
		Find(&facilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch facilities",
		})
	}

	return c.JSON(facilities)
}

// GetMyFacility returns one of the owner's facilities
func GetMyFacility(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := db.DB.Preload("Images").First(facility, facility.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch facility",
		})
	}

	return c.JSON(facility)
}

// UpdateFacility updates listing details. A rejected listing goes back to
// pending for re-review after an edit.
func UpdateFacility(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Parse update data
	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Remove fields that shouldn't be updated directly
	fieldsToIgnore := []string{"id", "ID", "owner_id", "OwnerID", "status", "Status", "review", "Review"}
	for _, field := range fieldsToIgnore {
		delete(updateData, field)
	}

	if facility.Status == models.FacilityRejected {
		if err := facility.SetStatus(models.FacilityPending); err == nil {
			updateData["status"] = models.FacilityPending
		}
	}

	if err := db.DB.Model(facility).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update facility",
		})
	}

	// Refresh facility data
	if err := db.DB.Preload("Images").First(facility, facility.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve updated facility",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Facility updated successfully",
		"facility": facility,
	})
}

// DeleteFacility removes a listing and its scheduling data
func DeleteFacility(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Refuse while active bookings exist
	var active int64
	db.DB.Model(&models.Booking{}).
		Where("facility_id = ? AND status IN ?", facility.ID,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Count(&active)
	if active > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Facility has active bookings",
		})
	}

	if err := db.DB.Delete(facility).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete facility",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadFacilityPhotos uploads listing photos to Cloudinary
func UploadFacilityPhotos(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse multipart form",
			Error:   err.Error(),
		})
	}

	tempDir := "uploads"
	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create temp directory",
			Error:   err.Error(),
		})
	}

	photoFiles := form.File["photos"]
	if len(photoFiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No photos provided",
		})
	}

	allowedTypes := map[string]bool{"image/jpeg": true, "image/png": true}
	var uploaded []models.FacilityImage
	for i, photo := range photoFiles {
		if !allowedTypes[photo.Header.Get("Content-Type")] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid photo type. Only JPEG/PNG allowed",
			})
		}

		tempPath := filepath.Join(tempDir, photo.Filename)
		if err := c.SaveFile(photo, tempPath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to save photo",
				Error:   err.Error(),
			})
		}

		publicID := fmt.Sprintf("facility_%d_photo_%d", facility.ID, i)
		url, err := utils.UploadToCloudinary(tempPath, publicID, "facility_photos")
		os.Remove(tempPath)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to upload photo to Cloudinary",
				Error:   err.Error(),
			})
		}

		image := models.FacilityImage{
			FacilityID: facility.ID,
			URL:        url,
			IsPrimary:  i == 0 && len(facility.Images) == 0,
		}
		if err := db.DB.Create(&image).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save photo record",
			})
		}
		uploaded = append(uploaded, image)
	}

	return c.JSON(fiber.Map{
		"message": "Photos uploaded successfully",
		"images":  uploaded,
	})
}
