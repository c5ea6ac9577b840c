package models

import (
	"gorm.io/gorm"
)

// FacilityConfig is the per-facility booking configuration: one row per
// facility, created when the listing is approved and replaced wholesale on
// every save.
type FacilityConfig struct {
	gorm.Model
	FacilityID            uint   `json:"facility_id" gorm:"uniqueIndex"`
	AvailabilityIncrement int    `json:"availability_increment" gorm:"default:60"` // minutes
	MinimumRentalDuration *int   `json:"minimum_rental_duration"`                  // minutes, nil means "equal to increment"
	Timezone              string `json:"timezone" gorm:"default:'UTC'"`            // IANA zone label, informational
	Notes                 string `json:"notes"`
}

// MinimumDuration returns the effective minimum rental length in minutes.
func (c *FacilityConfig) MinimumDuration() int {
	if c.MinimumRentalDuration == nil {
		return c.AvailabilityIncrement
	}
	return *c.MinimumRentalDuration
}

// RepairMinimumDuration unsets the minimum rental duration when it no longer
// exceeds the increment. Called whenever the increment changes, before the
// row is persisted.
func (c *FacilityConfig) RepairMinimumDuration() {
	if c.MinimumRentalDuration != nil && *c.MinimumRentalDuration <= c.AvailabilityIncrement {
		c.MinimumRentalDuration = nil
	}
}
