package models

import (
	"time"

	"gorm.io/gorm"
)

type ExceptionType string

const (
	ExceptionManual      ExceptionType = "manual"
	ExceptionHoliday     ExceptionType = "holiday"
	ExceptionMaintenance ExceptionType = "maintenance"
	ExceptionRecurring   ExceptionType = "recurring"
)

// AvailabilityException overrides the weekly schedule on one calendar date.
// With no start/end time it applies to the whole day; with times it blocks
// or opens just that sub-interval. IsAvailable=false blocks, true opens even
// if the weekly schedule says closed.
type AvailabilityException struct {
	gorm.Model
	FacilityID    uint          `json:"facility_id" gorm:"index"`
	ExceptionDate time.Time     `json:"exception_date" gorm:"type:date;index"`
	StartTime     *string       `json:"start_time"` // "HH:MM", nil for whole-day
	EndTime       *string       `json:"end_time"`   // "HH:MM", nil for whole-day
	IsAvailable   bool          `json:"is_available"`
	ExceptionType ExceptionType `json:"exception_type" gorm:"default:'manual'"`
	Notes         string        `json:"notes"`
}

// WholeDay reports whether the exception covers the entire date.
func (e *AvailabilityException) WholeDay() bool {
	return e.StartTime == nil || e.EndTime == nil
}
