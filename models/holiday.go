package models

import (
	"time"

	"gorm.io/gorm"
)

// HolidayTemplate is a named calendar of holidays (e.g., "US Federal 2026")
// an owner can apply to a facility to pre-populate blocking exceptions.
type HolidayTemplate struct {
	gorm.Model
	Name   string                `json:"name" gorm:"unique"`
	Region string                `json:"region"`
	Year   int                   `json:"year"`
	Dates  []HolidayTemplateDate `json:"dates,omitempty" gorm:"foreignKey:TemplateID"`
}

type HolidayTemplateDate struct {
	gorm.Model
	TemplateID uint      `json:"template_id" gorm:"index"`
	Date       time.Time `json:"date" gorm:"type:date"`
	Label      string    `json:"label"` // e.g., "New Year's Day"
}

// FacilityHoliday records which templates a facility has applied, so the UI
// can show the selection and re-applying a template can be made idempotent.
type FacilityHoliday struct {
	gorm.Model
	FacilityID uint            `json:"facility_id" gorm:"index"`
	TemplateID uint            `json:"template_id"`
	Template   HolidayTemplate `json:"template" gorm:"foreignKey:TemplateID"`
}
