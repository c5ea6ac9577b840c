package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
	StatusCompleted BookingStatus = "completed"
)

type Booking struct {
	gorm.Model
	Reference  string        `json:"reference" gorm:"uniqueIndex"`
	FacilityID uint          `json:"facility_id" gorm:"index"`
	Facility   Facility      `json:"facility" gorm:"foreignKey:FacilityID"`
	RenterID   uint          `json:"renter_id"`
	Renter     User          `json:"renter" gorm:"foreignKey:RenterID"`
	RentalDate time.Time     `json:"rental_date" gorm:"type:date;index"`
	StartTime  string        `json:"start_time"` // "HH:MM" wall clock on RentalDate
	EndTime    string        `json:"end_time"`   // "HH:MM" wall clock on RentalDate
	Duration   int           `json:"duration"`   // minutes
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	Notes      string        `json:"notes"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// UpdateStatus enforces the booking lifecycle before persisting the change.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	switch b.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCanceled:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}

	b.Status = newStatus
	if tx != nil {
		if err := tx.Save(b).Error; err != nil {
			return err
		}
	}
	return nil
}

// Active reports whether the booking still occupies its time slot.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
