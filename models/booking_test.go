package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		wantErr bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, false},
		{"pending to canceled", StatusPending, StatusCanceled, false},
		{"pending to completed skips confirmation", StatusPending, StatusCompleted, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, false},
		{"confirmed to canceled", StatusConfirmed, StatusCanceled, false},
		{"confirmed back to pending", StatusConfirmed, StatusPending, true},
		{"completed is terminal", StatusCompleted, StatusCanceled, true},
		{"canceled is terminal", StatusCanceled, StatusConfirmed, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := b.UpdateStatus(nil, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.from, b.Status, "status unchanged on rejected transition")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, b.Status)
		})
	}
}

func TestBookingActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).Active())
	assert.True(t, (&Booking{Status: StatusConfirmed}).Active())
	assert.False(t, (&Booking{Status: StatusCanceled}).Active())
	assert.False(t, (&Booking{Status: StatusCompleted}).Active())
}

func TestFacilityStatusTransitions(t *testing.T) {
	f := &Facility{Status: FacilityPending}

	require.NoError(t, f.SetStatus(FacilityRejected))
	require.NoError(t, f.SetStatus(FacilityPending), "rejected listings can be resubmitted")
	require.NoError(t, f.SetStatus(FacilityApproved))
	assert.Error(t, f.SetStatus(FacilityRejected), "approved is terminal")
	assert.Error(t, f.SetStatus(FacilityPending), "approved is terminal")
}
