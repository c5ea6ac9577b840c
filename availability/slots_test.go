package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilityhub/facility-rental-app/models"
)

func TestGenerateSlots(t *testing.T) {
	open := []Interval{{540, 1020}} // 09:00-17:00

	slots := GenerateSlots(open, 30)
	require.Len(t, slots, 16)
	assert.Equal(t, Slot{Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, Slot{Start: "16:30", End: "17:00"}, slots[15])

	// floor(N/increment): a 90-minute window yields one 60-minute slot.
	slots = GenerateSlots([]Interval{{540, 630}}, 60)
	require.Len(t, slots, 1)
	assert.Equal(t, Slot{Start: "09:00", End: "10:00"}, slots[0])

	// An interval shorter than the increment yields nothing.
	assert.Empty(t, GenerateSlots([]Interval{{540, 570}}, 60))

	// Slots stay chronological across split intervals.
	slots = GenerateSlots([]Interval{{540, 660}, {840, 960}}, 60)
	require.Len(t, slots, 4)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[1].Start)
	assert.Equal(t, "14:00", slots[2].Start)
	assert.Equal(t, "15:00", slots[3].Start)

	assert.Empty(t, GenerateSlots(open, 0))
	assert.Empty(t, GenerateSlots(nil, 30))
}

func TestFilterReserved(t *testing.T) {
	slots := GenerateSlots([]Interval{{540, 720}}, 60) // 09:00, 10:00, 11:00
	require.Len(t, slots, 3)

	// A booking 10:00-11:00 removes only the middle slot.
	free := FilterReserved(slots, []Interval{{600, 660}})
	require.Len(t, free, 2)
	assert.Equal(t, "09:00", free[0].Start)
	assert.Equal(t, "11:00", free[1].Start)

	// A booking straddling two slots removes both.
	free = FilterReserved(slots, []Interval{{630, 690}})
	require.Len(t, free, 1)
	assert.Equal(t, "09:00", free[0].Start)

	// A booking ending exactly where a slot starts does not touch it.
	free = FilterReserved(slots, []Interval{{480, 540}})
	assert.Len(t, free, 3)

	assert.Equal(t, slots, FilterReserved(slots, nil))
}

func TestFitsWithin(t *testing.T) {
	open := []Interval{{540, 720}, {840, 1020}} // 09:00-12:00, 14:00-17:00

	assert.True(t, FitsWithin(open, 540, 180), "exactly fills the morning")
	assert.True(t, FitsWithin(open, 900, 120), "inside the afternoon")
	assert.False(t, FitsWithin(open, 660, 120), "runs past the morning close")
	assert.False(t, FitsWithin(open, 660, 240), "cannot span the midday gap")
	assert.False(t, FitsWithin(open, 480, 60), "starts before opening")
	assert.False(t, FitsWithin(open, 540, 0), "zero duration")
	assert.False(t, FitsWithin(nil, 540, 60), "no open intervals")
}

func TestQuotePrice(t *testing.T) {
	// Hourly pricing pro-rates by minutes.
	assert.Equal(t, 50.0, QuotePrice(50, models.PricePerHour, 60))
	assert.Equal(t, 75.0, QuotePrice(50, models.PricePerHour, 90))
	assert.Equal(t, 12.5, QuotePrice(50, models.PricePerHour, 15))

	// Day and session pricing is flat regardless of duration.
	assert.Equal(t, 300.0, QuotePrice(300, models.PricePerDay, 90))
	assert.Equal(t, 120.0, QuotePrice(120, models.PricePerSession, 240))
}
