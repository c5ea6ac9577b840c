package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeeklySchedule is one recurring open interval of a facility on one weekday.
// A weekday with multiple intervals (split morning/evening hours) stores one
// row per interval. A closed weekday stores a single row with
// IsAvailable=false and empty times.
type WeeklySchedule struct {
	gorm.Model
	FacilityID  uint      `json:"facility_id" gorm:"index"`
	DayOfWeek   DayOfWeek `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime     string    `json:"end_time"`   // Format "HH:MM" in 24h
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
}

// TimeRange is a wall-clock open interval within one day.
type TimeRange struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// WeekdaySchedule is the grouped view of one weekday's rows: the form the
// schedule editor submits and the availability endpoints return.
type WeekdaySchedule struct {
	DayOfWeek   DayOfWeek   `json:"day_of_week"`
	IsAvailable bool        `json:"is_available"`
	TimeSlots   []TimeRange `json:"time_slots"`
}
