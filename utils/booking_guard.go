package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/models"
)

// CheckBookingConflict reports whether a facility is free of active bookings
// overlapping [startTime, endTime) on the given date. Matching rows are
// locked so two concurrent booking attempts serialize on the same facility
// and date. Times are zero-padded "HH:MM" so string comparison orders them
// correctly.
func CheckBookingConflict(tx *gorm.DB, facilityID uint, date time.Time, startTime, endTime string) (bool, error) {
	var existing models.Booking
	err := tx.Raw(`
		SELECT *
		FROM bookings
		WHERE facility_id = ?
		  AND rental_date = ?
		  AND status IN ('pending', 'confirmed')
		  AND deleted_at IS NULL
		  AND start_time < ? AND end_time > ?
		LIMIT 1
		FOR UPDATE
	`, facilityID, date.Format("2006-01-02"), endTime, startTime).
		Scan(&existing).Error

	// If there is any conflicting booking, the slot is taken
	if err == nil && existing.ID != 0 {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// No conflict, slot is available
	return true, nil
}
