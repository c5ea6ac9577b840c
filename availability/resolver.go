package availability

import (
	"fmt"
	"time"

	"github.com/facilityhub/facility-rental-app/models"
)

// DateFormat is the wire format for calendar dates throughout the API.
const DateFormat = "2006-01-02"

// baselineFor builds the weekly default open set for one weekday from the
// stored schedule rows. Rows marked unavailable or with empty times
// contribute nothing, so a closed day resolves to no intervals. Rows are
// normalized defensively even though the write path rejects overlaps.
func baselineFor(rows []models.WeeklySchedule, day models.DayOfWeek) ([]Interval, error) {
	var open []Interval
	for _, row := range rows {
		if row.DayOfWeek != day || !row.IsAvailable {
			continue
		}
		if row.StartTime == "" || row.EndTime == "" {
			continue
		}
		iv, err := ParseRange(row.StartTime, row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("weekly schedule row %d: %w", row.ID, err)
		}
		open = append(open, iv)
	}
	return Normalize(open), nil
}

// applyException folds one exception into the open set for its date.
// Whole-day exceptions replace the set outright; timed exceptions carve out
// or add just their sub-interval.
func applyException(open []Interval, exc models.AvailabilityException) ([]Interval, error) {
	if exc.WholeDay() {
		if exc.IsAvailable {
			return []Interval{FullDay}, nil
		}
		return nil, nil
	}

	iv, err := ParseRange(*exc.StartTime, *exc.EndTime)
	if err != nil {
		return nil, fmt.Errorf("exception %d: %w", exc.ID, err)
	}
	if exc.IsAvailable {
		return Union(open, iv), nil
	}
	return Subtract(open, iv), nil
}

// sameDate compares calendar dates ignoring the time-of-day component the
// database may attach to a DATE column scan.
func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ResolveDay merges the weekly schedule with the date's exceptions to
// produce the authoritative open intervals for one calendar date. Exceptions
// are applied sequentially in the order given, which the store guarantees is
// date then id ascending.
func ResolveDay(rows []models.WeeklySchedule, exceptions []models.AvailabilityException, date time.Time) ([]Interval, error) {
	open, err := baselineFor(rows, models.DayOfWeek(date.Weekday()))
	if err != nil {
		return nil, err
	}
	for _, exc := range exceptions {
		if !sameDate(exc.ExceptionDate, date) {
			continue
		}
		open, err = applyException(open, exc)
		if err != nil {
			return nil, err
		}
	}
	return open, nil
}

// ResolveWindow resolves every date in [from, to] inclusive from a single
// pre-fetched schedule and exception set, keyed by DateFormat date string.
func ResolveWindow(rows []models.WeeklySchedule, exceptions []models.AvailabilityException, from, to time.Time) (map[string][]Interval, error) {
	out := make(map[string][]Interval)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		open, err := ResolveDay(rows, exceptions, d)
		if err != nil {
			return nil, err
		}
		out[d.Format(DateFormat)] = open
	}
	return out, nil
}
