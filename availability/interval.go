package availability

import (
	"fmt"
	"sort"

	"github.com/facilityhub/facility-rental-app/models"
)

// Interval is a half-open block of wall-clock time on one date, expressed in
// minutes from midnight: [Start, End).
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullDayEnd is the closing bound of a whole-day opening, 23:59.
const FullDayEnd = 23*60 + 59

// FullDay covers an entire date, used when a whole-day exception opens a
// facility regardless of the weekly schedule.
var FullDay = Interval{Start: 0, End: FullDayEnd}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return i.End - i.Start
}

// ParseClock converts an "HH:MM" 24h wall-clock string to minutes from
// midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	for _, idx := range []int{0, 1, 3, 4} {
		if s[idx] < '0' || s[idx] > '9' {
			return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseRange converts a start/end pair of "HH:MM" strings to an Interval.
func ParseRange(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return Interval{Start: s, End: e}, nil
}

// TimeRange converts the interval back to the wall-clock form stored in the
// database.
func (i Interval) TimeRange() models.TimeRange {
	return models.TimeRange{Start: FormatClock(i.Start), End: FormatClock(i.End)}
}

// Normalize sorts intervals and merges any that overlap or touch, returning
// a canonical disjoint ascending list. Empty and inverted intervals are
// dropped.
func Normalize(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.End > iv.Start {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.Slice(valid, func(a, b int) bool {
		if valid[a].Start != valid[b].Start {
			return valid[a].Start < valid[b].Start
		}
		return valid[a].End < valid[b].End
	})

	merged := []Interval{valid[0]}
	for _, iv := range valid[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract removes the blocked range from every interval, splitting an
// interval when the block falls strictly inside it. The input is assumed
// disjoint ascending; the result stays that way.
func Subtract(intervals []Interval, blocked Interval) []Interval {
	if blocked.End <= blocked.Start {
		return intervals
	}
	var out []Interval
	for _, iv := range intervals {
		if blocked.End <= iv.Start || blocked.Start >= iv.End {
			out = append(out, iv)
			continue
		}
		if blocked.Start > iv.Start {
			out = append(out, Interval{Start: iv.Start, End: blocked.Start})
		}
		if blocked.End < iv.End {
			out = append(out, Interval{Start: blocked.End, End: iv.End})
		}
	}
	return out
}

// Union adds an open range to the set, merging with anything it overlaps.
func Union(intervals []Interval, added Interval) []Interval {
	if added.End <= added.Start {
		return intervals
	}
	combined := make([]Interval, len(intervals), len(intervals)+1)
	copy(combined, intervals)
	combined = append(combined, added)
	return Normalize(combined)
}

// overlapping reports whether any two intervals in the list overlap. Touching
// intervals (one ending where the next starts) do not count. Used to reject
// conflicting weekday entries at write time.
func overlapping(intervals []Interval) bool {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start < sorted[b].Start })
	for idx := 1; idx < len(sorted); idx++ {
		if sorted[idx].Start < sorted[idx-1].End {
			return true
		}
	}
	return false
}
