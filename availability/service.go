package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/models"
)

// ErrValidation marks caller mistakes so handlers can answer 400 instead of
// 500. Test with errors.Is.
var ErrValidation = errors.New("invalid input")

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// ValidIncrements are the slot granularities the configuration UI offers.
var ValidIncrements = []int{15, 30, 60, 120, 240}

// Service is the scheduling core: weekly schedules, date exceptions, the
// availability resolver and the slot generator, all against an injected
// Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// mondayFirst is the presentation order for weekly schedules. Day-of-week
// semantics stay Sunday=0; only the returned ordering changes.
var mondayFirst = []models.DayOfWeek{
	models.Monday, models.Tuesday, models.Wednesday, models.Thursday,
	models.Friday, models.Saturday, models.Sunday,
}

// WeekSchedule returns a dense 7-entry schedule, Monday first, one entry per
// weekday. Weekdays with no stored rows come back as unavailable, and an
// "available" day that somehow has no intervals collapses to unavailable.
func (s *Service) WeekSchedule(facilityID uint) ([]models.WeekdaySchedule, error) {
	rows, err := s.store.WeeklySchedule(facilityID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[models.DayOfWeek][]models.TimeRange)
	for _, row := range rows {
		if !row.IsAvailable || row.StartTime == "" || row.EndTime == "" {
			continue
		}
		byDay[row.DayOfWeek] = append(byDay[row.DayOfWeek], models.TimeRange{
			Start: row.StartTime,
			End:   row.EndTime,
		})
	}

	week := make([]models.WeekdaySchedule, 0, 7)
	for _, day := range mondayFirst {
		slots := byDay[day]
		sort.Slice(slots, func(a, b int) bool { return slots[a].Start < slots[b].Start })
		week = append(week, models.WeekdaySchedule{
			DayOfWeek:   day,
			IsAvailable: len(slots) > 0,
			TimeSlots:   slots,
		})
	}
	return week, nil
}

// ReplaceWeekSchedule validates and saves a complete 7-day schedule,
// replacing whatever was stored before. Every weekday must appear exactly
// once; closed days are submitted with is_available=false and no slots.
// Overlapping intervals within one weekday are rejected here rather than
// silently merged at resolve time.
func (s *Service) ReplaceWeekSchedule(facilityID uint, week []models.WeekdaySchedule) error {
	if len(week) != 7 {
		return validationErr("schedule must cover all 7 weekdays, got %d", len(week))
	}

	seen := make(map[models.DayOfWeek]bool, 7)
	var rows []models.WeeklySchedule
	for _, day := range week {
		if day.DayOfWeek < models.Sunday || day.DayOfWeek > models.Saturday {
			return validationErr("day_of_week %d out of range", day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return validationErr("duplicate entry for day_of_week %d", day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		if !day.IsAvailable || len(day.TimeSlots) == 0 {
			// A closed day keeps a single marker row so reads stay dense.
			rows = append(rows, models.WeeklySchedule{
				FacilityID:  facilityID,
				DayOfWeek:   day.DayOfWeek,
				IsAvailable: false,
			})
			continue
		}

		var intervals []Interval
		for _, slot := range day.TimeSlots {
			iv, err := ParseRange(slot.Start, slot.End)
			if err != nil {
				return validationErr("day %d: %v", day.DayOfWeek, err)
			}
			intervals = append(intervals, iv)
			rows = append(rows, models.WeeklySchedule{
				FacilityID:  facilityID,
				DayOfWeek:   day.DayOfWeek,
				StartTime:   slot.Start,
				EndTime:     slot.End,
				IsAvailable: true,
			})
		}
		if overlapping(intervals) {
			return validationErr("day %d has overlapping time slots", day.DayOfWeek)
		}
	}

	return s.store.ReplaceWeeklySchedule(facilityID, rows)
}

// AddException validates and stores a date-specific override. Duplicate
// exceptions on one date are permitted; the resolver applies them all in
// order.
func (s *Service) AddException(exc *models.AvailabilityException) error {
	if exc.FacilityID == 0 {
		return validationErr("facility_id is required")
	}
	if exc.ExceptionDate.IsZero() {
		return validationErr("exception_date is required")
	}
	if (exc.StartTime == nil) != (exc.EndTime == nil) {
		return validationErr("start_time and end_time must both be set or both be empty")
	}
	if !exc.WholeDay() {
		if _, err := ParseRange(*exc.StartTime, *exc.EndTime); err != nil {
			return validationErr("%v", err)
		}
	}
	switch exc.ExceptionType {
	case "":
		exc.ExceptionType = models.ExceptionManual
	case models.ExceptionManual, models.ExceptionHoliday,
		models.ExceptionMaintenance, models.ExceptionRecurring:
	default:
		return validationErr("unknown exception_type %q", exc.ExceptionType)
	}
	return s.store.CreateException(exc)
}

// ListExceptions returns the facility's exceptions with dates in [from, to]
// inclusive, ordered by date ascending.
func (s *Service) ListExceptions(facilityID uint, from, to time.Time) ([]models.AvailabilityException, error) {
	if to.Before(from) {
		return nil, validationErr("range end %s before start %s", to.Format(DateFormat), from.Format(DateFormat))
	}
	return s.store.Exceptions(facilityID, from, to)
}

// RemoveException deletes one exception by id, scoped to the facility.
func (s *Service) RemoveException(facilityID, exceptionID uint) error {
	return s.store.DeleteException(facilityID, exceptionID)
}

// ResolveDate produces the open intervals for a single date.
func (s *Service) ResolveDate(facilityID uint, date time.Time) ([]Interval, error) {
	rows, err := s.store.WeeklySchedule(facilityID)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.store.Exceptions(facilityID, date, date)
	if err != nil {
		return nil, err
	}
	return ResolveDay(rows, exceptions, date)
}

// ResolveRange resolves every date in [from, to] with one schedule fetch and
// one exception fetch, so a 30-day browse window costs two queries.
func (s *Service) ResolveRange(facilityID uint, from, to time.Time) (map[string][]Interval, error) {
	if to.Before(from) {
		return nil, validationErr("range end %s before start %s", to.Format(DateFormat), from.Format(DateFormat))
	}
	rows, err := s.store.WeeklySchedule(facilityID)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.store.Exceptions(facilityID, from, to)
	if err != nil {
		return nil, err
	}
	return ResolveWindow(rows, exceptions, from, to)
}

// Slots resolves a date and subdivides it into bookable start times using
// the facility's configured increment.
func (s *Service) Slots(facilityID uint, date time.Time) ([]Slot, *models.FacilityConfig, error) {
	cfg, err := s.Config(facilityID)
	if err != nil {
		return nil, nil, err
	}
	open, err := s.ResolveDate(facilityID, date)
	if err != nil {
		return nil, nil, err
	}
	return GenerateSlots(open, cfg.AvailabilityIncrement), cfg, nil
}

// Config returns the facility's availability configuration, falling back to
// defaults when none has been stored yet.
func (s *Service) Config(facilityID uint) (*models.FacilityConfig, error) {
	cfg, err := s.store.Config(facilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.FacilityConfig{
				FacilityID:            facilityID,
				AvailabilityIncrement: 60,
				Timezone:              "UTC",
			}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// ConfigInput is the editable subset of the availability configuration.
type ConfigInput struct {
	AvailabilityIncrement int    `json:"availability_increment"`
	MinimumRentalDuration *int   `json:"minimum_rental_duration"`
	Timezone              string `json:"timezone"`
	Notes                 string `json:"notes"`
}

// UpdateConfig saves the facility configuration wholesale. A minimum rental
// duration that no longer exceeds the new increment is repaired to unset
// before any further validation, so raising the increment past a stored
// minimum silently clears it instead of rejecting the save.
func (s *Service) UpdateConfig(facilityID uint, input ConfigInput) (*models.FacilityConfig, error) {
	if !validIncrement(input.AvailabilityIncrement) {
		return nil, validationErr("availability_increment %d not allowed", input.AvailabilityIncrement)
	}
	if input.MinimumRentalDuration != nil && *input.MinimumRentalDuration <= input.AvailabilityIncrement {
		input.MinimumRentalDuration = nil
	}
	if input.MinimumRentalDuration != nil && *input.MinimumRentalDuration%input.AvailabilityIncrement != 0 {
		return nil, validationErr("minimum_rental_duration %d is not a multiple of the increment", *input.MinimumRentalDuration)
	}

	cfg, err := s.Config(facilityID)
	if err != nil {
		return nil, err
	}
	cfg.FacilityID = facilityID
	cfg.AvailabilityIncrement = input.AvailabilityIncrement
	cfg.MinimumRentalDuration = input.MinimumRentalDuration
	if input.Timezone != "" {
		cfg.Timezone = input.Timezone
	}
	cfg.Notes = input.Notes
	cfg.RepairMinimumDuration()

	if err := s.store.SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateBookingWindow checks a requested rental against the resolved open
// intervals and the facility configuration: the duration must be a multiple
// of the increment, at least the minimum, at most the booking ceiling, and
// the whole window must stay contiguously open.
func (s *Service) ValidateBookingWindow(facilityID uint, date time.Time, startClock string, duration int) (Interval, error) {
	cfg, err := s.Config(facilityID)
	if err != nil {
		return Interval{}, err
	}
	if duration <= 0 || duration%cfg.AvailabilityIncrement != 0 {
		return Interval{}, validationErr("duration %d is not a multiple of the %d minute increment", duration, cfg.AvailabilityIncrement)
	}
	if duration < cfg.MinimumDuration() {
		return Interval{}, validationErr("duration %d is below the %d minute minimum", duration, cfg.MinimumDuration())
	}
	if duration > MaxBookingMinutes {
		return Interval{}, validationErr("duration %d exceeds the %d minute maximum", duration, MaxBookingMinutes)
	}

	start, err := ParseClock(startClock)
	if err != nil {
		return Interval{}, validationErr("%v", err)
	}
	open, err := s.ResolveDate(facilityID, date)
	if err != nil {
		return Interval{}, err
	}
	if !FitsWithin(open, start, duration) {
		return Interval{}, validationErr("facility is not open from %s for %d minutes on %s",
			startClock, duration, date.Format(DateFormat))
	}
	return Interval{Start: start, End: start + duration}, nil
}

func validIncrement(minutes int) bool {
	for _, v := range ValidIncrements {
		if v == minutes {
			return true
		}
	}
	return false
}
