package models

import (
	"fmt"

	"gorm.io/gorm"
)

type FacilityStatus string

const (
	FacilityPending  FacilityStatus = "pending"
	FacilityApproved FacilityStatus = "approved"
	FacilityRejected FacilityStatus = "rejected"
)

type PriceUnit string

const (
	PricePerHour    PriceUnit = "hour"
	PricePerDay     PriceUnit = "day"
	PricePerSession PriceUnit = "session"
)

type Facility struct {
	gorm.Model
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"` // e.g., "sports_hall", "meeting_room", "event_space"
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	ZipCode     string          `json:"zip_code"`
	Capacity    int             `json:"capacity"`
	Price       float64         `json:"price"`
	PriceUnit   PriceUnit       `json:"price_unit" gorm:"default:'hour'"`
	Status      FacilityStatus  `json:"status" gorm:"default:'pending'"`
	OwnerID     uint            `json:"owner_id"`
	Owner       User            `json:"owner" gorm:"foreignKey:OwnerID"`
	Images      []FacilityImage `json:"images,omitempty" gorm:"foreignKey:FacilityID"`
	Review      ReviewFeedback  `json:"review" gorm:"type:jsonb"`
}

type FacilityImage struct {
	gorm.Model
	FacilityID uint   `json:"facility_id"`
	URL        string `json:"url"`
	IsPrimary  bool   `json:"is_primary"`
}

func (f *Facility) BeforeCreate(tx *gorm.DB) error {
	if f.Status == "" {
		f.Status = FacilityPending
	}
	return nil
}

// SetStatus guards the listing review lifecycle: pending facilities can be
// approved or rejected, rejected ones can be resubmitted as pending after
// edits, approved is terminal.
func (f *Facility) SetStatus(newStatus FacilityStatus) error {
	switch f.Status {
	case FacilityPending:
		if newStatus != FacilityApproved && newStatus != FacilityRejected {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case FacilityRejected:
		if newStatus != FacilityPending {
			return fmt.Errorf("invalid transition from rejected to %s", newStatus)
		}
	case FacilityApproved:
		return fmt.Errorf("no transitions allowed from %s", f.Status)
	}
	f.Status = newStatus
	return nil
}
