package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/models"
)

// fakeStore keeps everything in memory and counts reads so the tests can
// verify batching behaviour.
type fakeStore struct {
	schedule       []models.WeeklySchedule
	exceptions     []models.AvailabilityException
	config         *models.FacilityConfig
	nextID         uint
	scheduleReads  int
	exceptionReads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) WeeklySchedule(facilityID uint) ([]models.WeeklySchedule, error) {
	f.scheduleReads++
	return f.schedule, nil
}

func (f *fakeStore) ReplaceWeeklySchedule(facilityID uint, rows []models.WeeklySchedule) error {
	f.schedule = rows
	return nil
}

func (f *fakeStore) Exceptions(facilityID uint, from, to time.Time) ([]models.AvailabilityException, error) {
	f.exceptionReads++
	var out []models.AvailabilityException
	for _, exc := range f.exceptions {
		if exc.ExceptionDate.Before(from) || exc.ExceptionDate.After(to) {
			continue
		}
		out = append(out, exc)
	}
	return out, nil
}

func (f *fakeStore) CreateException(exc *models.AvailabilityException) error {
	exc.ID = f.nextID
	f.nextID++
	f.exceptions = append(f.exceptions, *exc)
	return nil
}

func (f *fakeStore) DeleteException(facilityID, exceptionID uint) error {
	for i, exc := range f.exceptions {
		if exc.ID == exceptionID {
			f.exceptions = append(f.exceptions[:i], f.exceptions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStore) Config(facilityID uint) (*models.FacilityConfig, error) {
	if f.config == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.config, nil
}

func (f *fakeStore) SaveConfig(cfg *models.FacilityConfig) error {
	f.config = cfg
	return nil
}

func openWeek(days map[models.DayOfWeek][]models.TimeRange) []models.WeekdaySchedule {
	week := make([]models.WeekdaySchedule, 0, 7)
	for day := models.Sunday; day <= models.Saturday; day++ {
		slots := days[day]
		week = append(week, models.WeekdaySchedule{
			DayOfWeek:   day,
			IsAvailable: len(slots) > 0,
			TimeSlots:   slots,
		})
	}
	return week
}

func TestReplaceAndReadWeekSchedule(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	err := svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {
			{Start: "14:00", End: "17:00"},
			{Start: "09:00", End: "12:00"},
		},
		models.Friday: {{Start: "10:00", End: "18:00"}},
	}))
	require.NoError(t, err)

	week, err := svc.WeekSchedule(1)
	require.NoError(t, err)
	require.Len(t, week, 7, "read is always dense")

	// Monday first, intervals sorted by start time.
	assert.Equal(t, models.Monday, week[0].DayOfWeek)
	assert.True(t, week[0].IsAvailable)
	require.Len(t, week[0].TimeSlots, 2)
	assert.Equal(t, "09:00", week[0].TimeSlots[0].Start)
	assert.Equal(t, "14:00", week[0].TimeSlots[1].Start)

	assert.Equal(t, models.Friday, week[4].DayOfWeek)
	assert.True(t, week[4].IsAvailable)

	// Sunday comes last and is closed.
	assert.Equal(t, models.Sunday, week[6].DayOfWeek)
	assert.False(t, week[6].IsAvailable)
	assert.Empty(t, week[6].TimeSlots)
}

func TestReplaceWeekScheduleValidation(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.ReplaceWeekSchedule(1, openWeek(nil)[:6])
	assert.ErrorIs(t, err, ErrValidation, "must cover all 7 weekdays")

	dup := openWeek(nil)
	dup[1].DayOfWeek = models.Sunday
	err = svc.ReplaceWeekSchedule(1, dup)
	assert.ErrorIs(t, err, ErrValidation, "duplicate weekday")

	err = svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {{Start: "09:00", End: "25:00"}},
	}))
	assert.ErrorIs(t, err, ErrValidation, "malformed time")

	err = svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {
			{Start: "09:00", End: "13:00"},
			{Start: "12:00", End: "17:00"},
		},
	}))
	assert.ErrorIs(t, err, ErrValidation, "overlapping slots")

	// Adjacent slots are fine.
	err = svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {
			{Start: "09:00", End: "12:00"},
			{Start: "12:00", End: "17:00"},
		},
	}))
	assert.NoError(t, err)
}

func TestWeekScheduleCollapsesEmptyAvailableDay(t *testing.T) {
	store := newFakeStore()
	// A marker row claiming availability but carrying no times reads back as
	// an unavailable day rather than an open-with-no-slots oddity.
	store.schedule = []models.WeeklySchedule{
		{FacilityID: 1, DayOfWeek: models.Monday, IsAvailable: true},
	}

	week, err := NewService(store).WeekSchedule(1)
	require.NoError(t, err)
	assert.False(t, week[0].IsAvailable)
	assert.Empty(t, week[0].TimeSlots)
}

func TestAddExceptionValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	clock := func(s string) *string { return &s }

	err := svc.AddException(&models.AvailabilityException{ExceptionDate: date})
	assert.ErrorIs(t, err, ErrValidation, "missing facility")

	err = svc.AddException(&models.AvailabilityException{FacilityID: 1})
	assert.ErrorIs(t, err, ErrValidation, "missing date")

	err = svc.AddException(&models.AvailabilityException{
		FacilityID: 1, ExceptionDate: date, StartTime: clock("09:00"),
	})
	assert.ErrorIs(t, err, ErrValidation, "unpaired times")

	err = svc.AddException(&models.AvailabilityException{
		FacilityID: 1, ExceptionDate: date,
		StartTime: clock("17:00"), EndTime: clock("09:00"),
	})
	assert.ErrorIs(t, err, ErrValidation, "inverted times")

	err = svc.AddException(&models.AvailabilityException{
		FacilityID: 1, ExceptionDate: date, ExceptionType: "vacation",
	})
	assert.ErrorIs(t, err, ErrValidation, "unknown type")

	// Valid whole-day exception defaults to the manual type.
	exc := &models.AvailabilityException{FacilityID: 1, ExceptionDate: date}
	require.NoError(t, svc.AddException(exc))
	assert.Equal(t, models.ExceptionManual, exc.ExceptionType)
	require.Len(t, store.exceptions, 1)
}

func TestRemoveException(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	exc := &models.AvailabilityException{FacilityID: 1, ExceptionDate: date}
	require.NoError(t, svc.AddException(exc))

	require.NoError(t, svc.RemoveException(1, exc.ID))
	err := svc.RemoveException(1, exc.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestResolveRangeBatchesFetches(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	require.NoError(t, svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {{Start: "09:00", End: "17:00"}},
	})))

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 29)

	store.scheduleReads = 0
	store.exceptionReads = 0
	out, err := svc.ResolveRange(1, from, to)
	require.NoError(t, err)
	assert.Len(t, out, 30)
	assert.Equal(t, 1, store.scheduleReads, "one schedule fetch for the whole window")
	assert.Equal(t, 1, store.exceptionReads, "one exception fetch for the whole window")

	_, err = svc.ResolveRange(1, to, from)
	assert.ErrorIs(t, err, ErrValidation, "inverted range")
}

func TestConfigDefaults(t *testing.T) {
	svc := NewService(newFakeStore())

	cfg, err := svc.Config(1)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.AvailabilityIncrement)
	assert.Nil(t, cfg.MinimumRentalDuration)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 60, cfg.MinimumDuration())
}

func TestUpdateConfig(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	minutes := func(m int) *int { return &m }

	_, err := svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 45})
	assert.ErrorIs(t, err, ErrValidation, "increment not in the allowed set")

	_, err = svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 60, MinimumRentalDuration: minutes(90)})
	assert.ErrorIs(t, err, ErrValidation, "minimum not a multiple of increment")

	cfg, err := svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 30, MinimumRentalDuration: minutes(120)})
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.MinimumDuration())

	// Shrinking the minimum to the increment repairs it to unset.
	cfg, err = svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 120, MinimumRentalDuration: minutes(120)})
	require.NoError(t, err)
	assert.Nil(t, cfg.MinimumRentalDuration)
	assert.Equal(t, 120, cfg.MinimumDuration())
}

func TestUpdateConfigRepairsMinimumOnIncrementRaise(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	minutes := func(m int) *int { return &m }

	// Stored config: 30-minute increment, 60-minute minimum.
	_, err := svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 30, MinimumRentalDuration: minutes(60)})
	require.NoError(t, err)

	// The editor round-trips the stored minimum while raising the increment
	// past it. The minimum is repaired to unset, not rejected as a bad
	// multiple.
	cfg, err := svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 120, MinimumRentalDuration: minutes(60)})
	require.NoError(t, err)
	assert.Nil(t, cfg.MinimumRentalDuration)
	assert.Equal(t, 120, cfg.MinimumDuration())

	// A minimum that survives the repair still has to be a multiple.
	_, err = svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 60, MinimumRentalDuration: minutes(90)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSlots(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	require.NoError(t, svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {{Start: "09:00", End: "17:00"}},
	})))
	_, err := svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 30})
	require.NoError(t, err)

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	slots, cfg, err := svc.Slots(1, monday)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.AvailabilityIncrement)
	require.Len(t, slots, 16)
	assert.Equal(t, Slot{Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, Slot{Start: "16:30", End: "17:00"}, slots[15])

	// Closed day yields no slots.
	slots, _, err = svc.Slots(1, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestValidateBookingWindow(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	minutes := func(m int) *int { return &m }

	require.NoError(t, svc.ReplaceWeekSchedule(1, openWeek(map[models.DayOfWeek][]models.TimeRange{
		models.Monday: {{Start: "09:00", End: "17:00"}},
	})))
	_, err := svc.UpdateConfig(1, ConfigInput{AvailabilityIncrement: 60, MinimumRentalDuration: minutes(120)})
	require.NoError(t, err)

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	window, err := svc.ValidateBookingWindow(1, monday, "10:00", 120)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 600, End: 720}, window)

	_, err = svc.ValidateBookingWindow(1, monday, "10:00", 90)
	assert.ErrorIs(t, err, ErrValidation, "not a multiple of the increment")

	_, err = svc.ValidateBookingWindow(1, monday, "10:00", 60)
	assert.ErrorIs(t, err, ErrValidation, "below the minimum")

	_, err = svc.ValidateBookingWindow(1, monday, "09:00", 540)
	assert.ErrorIs(t, err, ErrValidation, "over the booking ceiling")

	_, err = svc.ValidateBookingWindow(1, monday, "16:00", 120)
	assert.ErrorIs(t, err, ErrValidation, "runs past closing")

	_, err = svc.ValidateBookingWindow(1, monday.AddDate(0, 0, 1), "10:00", 120)
	assert.ErrorIs(t, err, ErrValidation, "closed day")

	_, err = svc.ValidateBookingWindow(1, monday, "1000", 120)
	assert.ErrorIs(t, err, ErrValidation, "malformed start time")
}
