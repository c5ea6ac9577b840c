package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/models"
	"github.com/facilityhub/facility-rental-app/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Every morning at 08:00, remind renters about tomorrow's bookings
	_, err := c.AddFunc("0 8 * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	// Hourly sweep expiring stale pending bookings
	_, err = c.AddFunc("0 * * * *", expireStalePendingBookings)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders mails renters with confirmed bookings tomorrow
func sendBookingReminders() {
	var bookings []models.Booking
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	err := db.DB.Preload("Renter").Preload("Facility").
		Where("status = ? AND rental_date = ?", models.StatusConfirmed, tomorrow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d bookings for reminders\n", len(bookings))

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", booking.Reference, err)
			continue
		}
		log.Printf("Sent reminder for booking %s to %s", booking.Reference, booking.Renter.Email)
	}
}

// expireStalePendingBookings cancels pending bookings whose rental date has passed
func expireStalePendingBookings() {
	today := time.Now().Format("2006-01-02")
	result := db.DB.Model(&models.Booking{}).
		Where("status = ? AND rental_date < ?", models.StatusPending, today).
		Update("status", models.StatusCanceled)
	if result.Error != nil {
		log.Printf("Error expiring stale pending bookings: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Expired %d stale pending bookings", result.RowsAffected)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Rental - %s", booking.Facility.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your rental tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Facility:</strong> %s</li>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>
		<p>If you need to cancel, please do so before the rental date.</p>
		<p>Best regards,</p>
		<p>The Facility Rental Team</p>
	`, booking.Renter.Name, booking.Facility.Name, booking.Reference,
		booking.RentalDate.Format("2006-01-02"),
		booking.StartTime, booking.EndTime)

	return utils.SendEmail(booking.Renter.Email, subject, body)
}
