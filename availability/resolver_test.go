package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/models"
)

// The first week of June 2025: Sunday the 1st through Saturday the 7th.
var (
	sunday   = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
)

func scheduleRow(day models.DayOfWeek, start, end string) models.WeeklySchedule {
	return models.WeeklySchedule{
		FacilityID:  1,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func closedRow(day models.DayOfWeek) models.WeeklySchedule {
	return models.WeeklySchedule{FacilityID: 1, DayOfWeek: day, IsAvailable: false}
}

func exception(id uint, date time.Time, start, end string, available bool) models.AvailabilityException {
	exc := models.AvailabilityException{
		Model:         gorm.Model{ID: id},
		FacilityID:    1,
		ExceptionDate: date,
		IsAvailable:   available,
	}
	if start != "" {
		exc.StartTime = &start
		exc.EndTime = &end
	}
	return exc
}

func TestResolveDayBaseline(t *testing.T) {
	rows := []models.WeeklySchedule{
		scheduleRow(models.Monday, "09:00", "12:00"),
		scheduleRow(models.Monday, "14:00", "17:00"),
		closedRow(models.Sunday),
	}

	open, err := ResolveDay(rows, nil, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{540, 720}, {840, 1020}}, open)

	// A closed weekday resolves to no intervals at all.
	open, err = ResolveDay(rows, nil, sunday)
	require.NoError(t, err)
	assert.Empty(t, open)

	// A weekday with no rows is closed too.
	open, err = ResolveDay(rows, nil, saturday)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestResolveDayWholeDayExceptions(t *testing.T) {
	rows := []models.WeeklySchedule{
		scheduleRow(models.Monday, "09:00", "17:00"),
	}

	// Whole-day closure wipes the baseline.
	open, err := ResolveDay(rows, []models.AvailabilityException{
		exception(1, monday, "", "", false),
	}, monday)
	require.NoError(t, err)
	assert.Empty(t, open)

	// Whole-day opening on a normally closed day yields 00:00-23:59.
	open, err = ResolveDay(rows, []models.AvailabilityException{
		exception(1, saturday, "", "", true),
	}, saturday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{FullDay}, open)

	// Exceptions for other dates are ignored.
	open, err = ResolveDay(rows, []models.AvailabilityException{
		exception(1, saturday, "", "", false),
	}, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{540, 1020}}, open)
}

func TestResolveDayTimedExceptions(t *testing.T) {
	rows := []models.WeeklySchedule{
		scheduleRow(models.Monday, "09:00", "17:00"),
	}

	// A timed block carves out just its sub-interval, leaving the rest open.
	open, err := ResolveDay(rows, []models.AvailabilityException{
		exception(1, monday, "12:00", "13:00", false),
	}, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{540, 720}, {780, 1020}}, open)

	// A timed opening extends the day past the weekly closing time.
	open, err = ResolveDay(rows, []models.AvailabilityException{
		exception(1, monday, "17:00", "20:00", true),
	}, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{540, 1200}}, open)

	// A timed opening on a closed day opens only that window.
	open, err = ResolveDay(rows, []models.AvailabilityException{
		exception(1, saturday, "10:00", "14:00", true),
	}, saturday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{600, 840}}, open)
}

func TestResolveDaySequentialApplication(t *testing.T) {
	rows := []models.WeeklySchedule{
		scheduleRow(models.Monday, "09:00", "17:00"),
	}

	// A whole-day closure followed by a timed opening leaves just the opening:
	// order matters and the store feeds exceptions date then id ascending.
	open, err := ResolveDay(rows, []models.AvailabilityException{
		exception(1, monday, "", "", false),
		exception(2, monday, "10:00", "12:00", true),
	}, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{600, 720}}, open)

	// Applying the same closure twice is the same as applying it once.
	open, err = ResolveDay(rows, []models.AvailabilityException{
		exception(1, monday, "12:00", "13:00", false),
		exception(2, monday, "12:00", "13:00", false),
	}, monday)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{540, 720}, {780, 1020}}, open)
}

func TestResolveDayIdempotent(t *testing.T) {
	rows := []models.WeeklySchedule{
		scheduleRow(models.Monday, "09:00", "17:00"),
	}
	exceptions := []models.AvailabilityException{
		exception(1, monday, "12:00", "13:00", false),
	}

	first, err := ResolveDay(rows, exceptions, monday)
	require.NoError(t, err)
	second, err := ResolveDay(rows, exceptions, monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveWindowClosedWeekWithHolidayOpening(t *testing.T) {
	// No weekly schedule at all; one whole-day opening on the Saturday.
	exceptions := []models.AvailabilityException{
		exception(1, saturday, "", "", true),
	}

	out, err := ResolveWindow(nil, exceptions, sunday, saturday)
	require.NoError(t, err)
	for date, open := range out {
		if date == "2025-06-07" {
			assert.Equal(t, []Interval{FullDay}, open)
			continue
		}
		assert.Empty(t, open, "date %s", date)
	}
}

func TestResolveWindow(t *testing.T) {
	rows := []models.WeeklySchedule{
		scheduleRow(models.Monday, "09:00", "17:00"),
		scheduleRow(models.Tuesday, "09:00", "17:00"),
	}
	exceptions := []models.AvailabilityException{
		exception(1, monday, "", "", false),          // holiday Monday
		exception(2, saturday, "10:00", "14:00", true), // open Saturday morning
	}

	out, err := ResolveWindow(rows, exceptions, sunday, saturday)
	require.NoError(t, err)
	require.Len(t, out, 7)

	assert.Empty(t, out["2025-06-01"], "Sunday closed")
	assert.Empty(t, out["2025-06-02"], "Monday holiday override")
	assert.Equal(t, []Interval{{540, 1020}}, out["2025-06-03"], "Tuesday baseline")
	assert.Empty(t, out["2025-06-04"], "Wednesday has no schedule")
	assert.Equal(t, []Interval{{600, 840}}, out["2025-06-07"], "Saturday exception opening")
}
