package availability

import (
	"github.com/facilityhub/facility-rental-app/models"
)

// Slot is one atomic bookable start-time unit, increment minutes long.
type Slot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// MaxBookingMinutes caps the total rental length a renter can select in one
// booking (8 hours).
const MaxBookingMinutes = 8 * 60

// GenerateSlots subdivides the resolved open intervals of a date into
// discrete increment-minute slots. A cursor walks each interval in increment
// steps and emits a slot whenever a full increment still fits, so an
// interval of N minutes yields floor(N/increment) slots. Slots come out in
// interval order, chronological within each interval.
func GenerateSlots(open []Interval, increment int) []Slot {
	if increment <= 0 {
		return nil
	}
	var slots []Slot
	for _, iv := range open {
		for cursor := iv.Start; cursor+increment <= iv.End; cursor += increment {
			slots = append(slots, Slot{
				Start: FormatClock(cursor),
				End:   FormatClock(cursor + increment),
			})
		}
	}
	return slots
}

// FilterReserved drops slots that overlap any existing reservation. It is a
// composable filter over the generated list, kept separate from resolution
// so "theoretically open" and "free of bookings" stay independent questions.
func FilterReserved(slots []Slot, reserved []Interval) []Slot {
	if len(reserved) == 0 {
		return slots
	}
	out := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		start, err := ParseClock(slot.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(slot.End)
		if err != nil {
			continue
		}
		taken := false
		for _, r := range reserved {
			if start < r.End && end > r.Start {
				taken = true
				break
			}
		}
		if !taken {
			out = append(out, slot)
		}
	}
	return out
}

// FitsWithin reports whether a rental of duration minutes starting at start
// stays contiguously inside one open interval. This is the guard that stops
// a renter picking a start time too close to closing.
func FitsWithin(open []Interval, start, duration int) bool {
	if duration <= 0 {
		return false
	}
	for _, iv := range open {
		if start >= iv.Start && start+duration <= iv.End {
			return true
		}
	}
	return false
}

// QuotePrice computes the total price for a rental: hourly facilities are
// pro-rated by the booked minutes, day and session pricing is flat
// regardless of duration.
func QuotePrice(unitPrice float64, unit models.PriceUnit, durationMinutes int) float64 {
	if unit == models.PricePerHour {
		return unitPrice * float64(durationMinutes) / 60
	}
	return unitPrice
}
