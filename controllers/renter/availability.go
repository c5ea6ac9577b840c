package renter

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/facilityhub/facility-rental-app/availability"
	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/redis"
	"github.com/facilityhub/facility-rental-app/utils"
)

// browseWindowDays is the default browse-page availability window.
const browseWindowDays = 30

func availabilityService() *availability.Service {
	return availability.NewService(availability.NewGormStore(db.DB))
}

// findApprovedFacility loads the facility by route param, hiding anything
// not approved.
func findApprovedFacility(c *fiber.Ctx) (*models.Facility, error) {
	id := c.Params("id")
	var facility models.Facility
	if err := db.DB.First(&facility, id).Error; err != nil {
		return nil, fmt.Errorf("facility not found")
	}
	if facility.Status != models.FacilityApproved {
		return nil, fmt.Errorf("facility not found")
	}
	return &facility, nil
}

// GetAvailability returns the resolved open intervals per date over a
// window, defaulting to the next 30 days. Windows are cached in redis and
// invalidated on any schedule write.
func GetAvailability(c *fiber.Ctx) error {
	facility, err := findApprovedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	from, to, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	fromKey := from.Format(availability.DateFormat)
	toKey := to.Format(availability.DateFormat)

	// Serve from cache when a previous request resolved the same window
	var cached map[string][]models.TimeRange
	if redis.GetAvailability(facility.ID, fromKey, toKey, &cached) {
		return c.JSON(fiber.Map{
			"facility_id":  facility.ID,
			"from":         fromKey,
			"to":           toKey,
			"availability": cached,
		})
	}

	resolved, err := availabilityService().ResolveRange(facility.ID, from, to)
	if err != nil {
		return c.Status(availabilityStatus(err)).JSON(utils.ErrorResponse{
			Message: "Failed to resolve availability",
			Error:   err.Error(),
		})
	}

	// A date with no open intervals means "no availability", not an error
	window := make(map[string][]models.TimeRange, len(resolved))
	for date, intervals := range resolved {
		ranges := make([]models.TimeRange, 0, len(intervals))
		for _, iv := range intervals {
			ranges = append(ranges, iv.TimeRange())
		}
		window[date] = ranges
	}

	redis.SetAvailability(facility.ID, fromKey, toKey, window)

	return c.JSON(fiber.Map{
		"facility_id":  facility.ID,
		"from":         fromKey,
		"to":           toKey,
		"availability": window,
	})
}

// GetSlots returns the bookable start-time slots for one date, with slots
// already taken by active bookings filtered out.
func GetSlots(c *fiber.Ctx) error {
	facility, err := findApprovedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date query parameter is required",
		})
	}
	date, err := time.Parse(availability.DateFormat, dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	slots, cfg, err := availabilityService().Slots(facility.ID, date)
	if err != nil {
		return c.Status(availabilityStatus(err)).JSON(utils.ErrorResponse{
			Message: "Failed to generate slots",
			Error:   err.Error(),
		})
	}

	reserved, err := reservedIntervals(facility.ID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch existing bookings",
			Error:   err.Error(),
		})
	}
	slots = availability.FilterReserved(slots, reserved)

	return c.JSON(fiber.Map{
		"facility_id":             facility.ID,
		"date":                    dateStr,
		"increment":               cfg.AvailabilityIncrement,
		"minimum_rental_duration": cfg.MinimumDuration(),
		"timezone":                cfg.Timezone,
		"notes":                   cfg.Notes,
		"slots":                   slots,
	})
}

// GetQuote prices a rental of the requested duration
func GetQuote(c *fiber.Ctx) error {
	facility, err := findApprovedFacility(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	duration, err := strconv.Atoi(c.Query("duration", "0"))
	if err != nil || duration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "duration query parameter must be a positive number of minutes",
		})
	}

	total := availability.QuotePrice(facility.Price, facility.PriceUnit, duration)

	return c.JSON(fiber.Map{
		"facility_id": facility.ID,
		"duration":    duration,
		"price":       facility.Price,
		"price_unit":  facility.PriceUnit,
		"total":       total,
	})
}

// reservedIntervals collects the wall-clock intervals of active bookings on
// one date.
func reservedIntervals(facilityID uint, date time.Time) ([]availability.Interval, error) {
	var bookings []models.Booking
	if err := db.DB.Where("facility_id = ? AND rental_date = ? AND status IN ?",
		facilityID, date.Format(availability.DateFormat),
		[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	var reserved []availability.Interval
	for _, b := range bookings {
		iv, err := availability.ParseRange(b.StartTime, b.EndTime)
		if err != nil {
			continue
		}
		reserved = append(reserved, iv)
	}
	return reserved, nil
}

func availabilityStatus(err error) int {
	if errors.Is(err, availability.ErrValidation) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, browseWindowDays-1)

	var err error
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(availability.DateFormat, v)
		if err != nil {
			return from, to, errors.New("invalid from date, use YYYY-MM-DD")
		}
		to = from.AddDate(0, 0, browseWindowDays-1)
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
	if to.Sub(from) > 92*24*time.Hour {
		return from, to, errors.New("date range exceeds maximum of 92 days")
	}
	return from, to, nil
}
