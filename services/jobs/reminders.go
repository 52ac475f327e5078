package jobs

import (
	"log"
	"time"

	"meet_flow_app_go/config"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"

	"gorm.io/gorm"
)

// SendBookingReminders checks for bookings starting tomorrow and sends reminders
func SendBookingReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting booking reminder job...")

	// Time range for bookings starting tomorrow (next 24-48 hours window)
	now := time.Now().UTC()
	tomorrowStart := now.Add(24 * time.Hour)
	tomorrowEnd := now.Add(48 * time.Hour) // Broad window to catch anything for "tomorrow"

	var bookings []models.Booking

	// Find bookings:
	// 1. Scheduled or Confirmed
	// 2. StartTime between tomorrowStart and tomorrowEnd
	// 3. ReminderSentAt is NULL
	err := database.Preload("EventType").
		Where("status IN (?)", []string{models.BookingStatusScheduled, models.BookingStatusConfirmed}).
		Where("start_time >= ? AND start_time <= ?", tomorrowStart, tomorrowEnd).
		Where("reminder_sent_at IS NULL").
		Find(&bookings).Error

	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	log.Printf("Found %d bookings to remind", len(bookings))

	for _, booking := range bookings {
		email := services.BuildBookingReminderEmail(cfg, &booking)

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", booking.ID, err)
			continue
		}

		sentAt := time.Now().UTC()
		database.Model(&booking).Update("reminder_sent_at", sentAt)
		log.Printf("Sent reminder for booking %s", booking.ID)
	}

	log.Println("Booking reminder job completed")
}
