package owner

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/availability"
	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/redis"
	"github.com/facilityhub/facility-rental-app/utils"
)

func scheduleService() *availability.Service {
	return availability.NewService(availability.NewGormStore(db.DB))
}

// statusFor maps scheduling-core errors to HTTP status codes: validation
// mistakes are the caller's fault, everything else is a store failure.
func statusFor(err error) int {
	if errors.Is(err, availability.ErrValidation) {
		return fiber.StatusBadRequest
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// GetWeeklySchedule returns the dense 7-day schedule, Monday first
func GetWeeklySchedule(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	week, err := scheduleService().WeekSchedule(facility.ID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to fetch weekly schedule",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"facility_id": facility.ID,
		"schedule":    week,
	})
}

// ReplaceWeeklySchedule replaces the facility's entire weekly schedule. The
// editor always submits all 7 days, closed ones included.
func ReplaceWeeklySchedule(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var week []models.WeekdaySchedule
	if err := c.BodyParser(&week); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := scheduleService().ReplaceWeekSchedule(facility.ID, week); err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to save weekly schedule",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(facility.ID)

	return c.JSON(fiber.Map{
		"message":     "Weekly schedule saved",
		"facility_id": facility.ID,
	})
}

// ListExceptions returns the facility's date exceptions in a range,
// defaulting to the next 90 days.
func ListExceptions(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	from, to, err := parseDateRange(c, 90)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	exceptions, err := scheduleService().ListExceptions(facility.ID, from, to)
	if err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to fetch exceptions",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"facility_id": facility.ID,
		"exceptions":  exceptions,
	})
}

// CreateException adds a date-specific availability override
func CreateException(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	type ExceptionInput struct {
		ExceptionDate string               `json:"exception_date"` // "YYYY-MM-DD"
		StartTime     *string              `json:"start_time"`
		EndTime       *string              `json:"end_time"`
		IsAvailable   bool                 `json:"is_available"`
		ExceptionType models.ExceptionType `json:"exception_type"`
		Notes         string               `json:"notes"`
	}

	input := new(ExceptionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.ExceptionDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "exception_date is required",
		})
	}
	date, err := time.Parse(availability.DateFormat, input.ExceptionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid exception_date format, use YYYY-MM-DD",
		})
	}

	exc := models.AvailabilityException{
		FacilityID:    facility.ID,
		ExceptionDate: date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		IsAvailable:   input.IsAvailable,
		ExceptionType: input.ExceptionType,
		Notes:         input.Notes,
	}

	if err := scheduleService().AddException(&exc); err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to create exception",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(facility.ID)

	return c.Status(fiber.StatusCreated).JSON(exc)
}

// DeleteException removes one exception by id
func DeleteException(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	exceptionID, err := strconv.ParseUint(c.Params("exceptionId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid exception id",
		})
	}

	if err := scheduleService().RemoveException(facility.ID, uint(exceptionID)); err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to delete exception",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(facility.ID)

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAvailabilityConfig returns the facility's booking configuration
func GetAvailabilityConfig(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	cfg, err := scheduleService().Config(facility.ID)
	if err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability config",
			Error:   err.Error(),
		})
	}

	return c.JSON(cfg)
}

// UpdateAvailabilityConfig saves the booking configuration wholesale
func UpdateAvailabilityConfig(c *fiber.Ctx) error {
	facility, err := findOwnedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var input availability.ConfigInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	cfg, err := scheduleService().UpdateConfig(facility.ID, input)
	if err != nil {
		return c.Status(statusFor(err)).JSON(utils.ErrorResponse{
			Message: "Failed to update availability config",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(facility.ID)

	return c.JSON(fiber.Map{
		"message": "Availability config updated",
		"config":  cfg,
	})
}

// parseDateRange reads from/to query params, defaulting to today through
// today+defaultDays.
func parseDateRange(c *fiber.Ctx, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, defaultDays)

	var err error
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(availability.DateFormat, v)
		if err != nil {
			return from, to, errors.New("invalid from date, use YYYY-MM-DD")
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse(availability.DateFormat, v)
		if err != nil {
			return from, to, errors.New("invalid to date, use YYYY-MM-DD")
		}
	}
	if to.Before(from) {
		return from, to, errors.New("to date must not be before from date")
	}
	return from, to, nil
}
