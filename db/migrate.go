package db

import (
	"fmt"
	"log"

	"github.com/facilityhub/facility-rental-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Facility{},
		&models.FacilityImage{},
		&models.WeeklySchedule{},
		&models.AvailabilityException{},
		&models.FacilityConfig{},
		&models.Booking{},
		&models.HolidayTemplate{},
		&models.HolidayTemplateDate{},
		&models.FacilityHoliday{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
