package services

import (
	"errors"
	"time"

	"meet_flow_app_go/models"
	"meet_flow_app_go/services/scheduling"

	"gorm.io/gorm"
)

// Booking errors surfaced to handlers. A store failure is returned as
// its own error so callers can tell "could not compute availability"
// apart from "no slots available".
var (
	ErrSlotNotAvailable    = errors.New("selected time is no longer available")
	ErrBookingNotEditable  = errors.New("booking cannot be modified")
	ErrBookingNotCancelled = errors.New("booking cannot be cancelled")
)

// GetBookingByID fetches a single booking with its event type
func GetBookingByID(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("EventType").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingByToken fetches a booking via its public access token
func GetBookingByToken(db *gorm.DB, token string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("EventType").First(&booking, "booking_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingsBetween fetches all bookings in a time range across every
// event type. The calendar is a single shared resource: conflict
// checks must never filter by event type.
func GetBookingsBetween(db *gorm.DB, startDate, endDate time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("EventType").
		Where("start_time < ? AND end_time > ?", endDate, startDate).
		Order("start_time asc").
		Find(&bookings).Error
	return bookings, err
}

// GetEventTypeBookings fetches bookings of one event type in a range.
// Display and reporting filter by event type; conflicts never do.
func GetEventTypeBookings(db *gorm.DB, eventTypeID string, startDate, endDate time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("EventType").
		Where("event_type_id = ? AND start_time >= ? AND end_time <= ?", eventTypeID, startDate, endDate).
		Where("status NOT IN (?)", []string{models.BookingStatusCancelled}).
		Order("start_time asc").
		Find(&bookings).Error
	return bookings, err
}

// GetInviteeBookings fetches all bookings made with one email address
func GetInviteeBookings(db *gorm.DB, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("EventType").
		Where("invitee_email = ?", email).
		Order("start_time desc").
		Find(&bookings).Error
	return bookings, err
}

// daySnapshot loads the booking snapshot for one calendar date. The
// snapshot is read once per computation; the engine never caches it.
func daySnapshot(db *gorm.DB, date time.Time) ([]models.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return GetBookingsBetween(db, dayStart, dayStart.Add(24*time.Hour))
}

// GetAvailableSlots computes the bookable slots for an event type on a
// date. Store errors are returned as errors, never as an empty day.
func GetAvailableSlots(db *gorm.DB, eventType *models.EventType, date time.Time, now time.Time) ([]models.TimeSlot, error) {
	return getAvailableSlots(db, eventType, date, now, "")
}

// GetRescheduleSlots computes the bookable slots for moving an existing
// booking, excluding the booking itself from the conflict set.
func GetRescheduleSlots(db *gorm.DB, eventType *models.EventType, date time.Time, now time.Time, bookingID string) ([]models.TimeSlot, error) {
	return getAvailableSlots(db, eventType, date, now, bookingID)
}

func getAvailableSlots(db *gorm.DB, eventType *models.EventType, date time.Time, now time.Time, excludeBookingID string) ([]models.TimeSlot, error) {
	bookings, err := daySnapshot(db, date)
	if err != nil {
		return nil, err
	}
	return scheduling.GenerateSlots(eventType, date, bookings, now, excludeBookingID), nil
}

// GetEligibleDates walks the calendar from a starting date and returns
// the dates worth offering on the day picker, without running full
// slot generation for each.
func GetEligibleDates(eventType *models.EventType, from time.Time, days int, today time.Time) []time.Time {
	eligible := make([]time.Time, 0)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		if scheduling.IsDateEligible(eventType, date, today) {
			eligible = append(eligible, time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()))
		}
	}
	return eligible
}

// IsSlotBookable re-derives the engine's checks for one concrete slot:
// the slot must sit inside the resolved open window and pass the
// conflict filter against the current day snapshot.
func IsSlotBookable(db *gorm.DB, eventType *models.EventType, start time.Time, now time.Time, excludeBookingID string) (bool, error) {
	candidate := scheduling.Interval{Start: start, End: start.Add(eventType.Duration())}

	schedule := scheduling.ResolveDay(eventType, start)
	if schedule.Window == nil {
		return false, nil
	}
	if candidate.Start.Before(schedule.Window.Start) || candidate.End.After(schedule.Window.End) {
		return false, nil
	}

	bookings, err := daySnapshot(db, start)
	if err != nil {
		return false, err
	}

	cutoff := now.Add(time.Duration(eventType.MinimumNoticeMinutes) * time.Minute)
	return scheduling.IsBookable(candidate, schedule, bookings, eventType, cutoff, excludeBookingID), nil
}

// CreateBooking creates a new booking after re-checking availability.
// The slot was only offered if it passed the engine, but the snapshot
// may have moved since, so the checks run again against fresh data.
func CreateBooking(db *gorm.DB, booking *models.Booking, now time.Time) error {
	eventType, err := GetEventTypeByID(db, booking.EventTypeID)
	if err != nil {
		return err
	}

	if booking.EndTime.IsZero() {
		booking.EndTime = booking.StartTime.Add(eventType.Duration())
	}
	booking.DurationMinutes = eventType.DurationMinutes

	bookable, err := IsSlotBookable(db, eventType, booking.StartTime, now, "")
	if err != nil {
		return err
	}
	if !bookable {
		return ErrSlotNotAvailable
	}

	return db.Create(booking).Error
}

// UpdateBookingStatus updates the status of a booking
func UpdateBookingStatus(db *gorm.DB, id, status string) error {
	if !models.IsValidBookingStatus(status) {
		return errors.New("invalid booking status")
	}
	return db.Model(&models.Booking{}).Where("id = ?", id).Update("status", status).Error
}

// CancelBooking cancels a booking, releasing its slot
func CancelBooking(db *gorm.DB, id string, reason string) error {
	booking, err := GetBookingByID(db, id)
	if err != nil {
		return err
	}
	if !booking.IsCancellable() {
		return ErrBookingNotCancelled
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": &now,
	}
	if reason != "" {
		updates["cancellation_reason"] = &reason
	}
	return db.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error
}

// RescheduleBooking moves a booking to a new start time. The booking
// being moved is excluded from the conflict set so it cannot collide
// with itself.
func RescheduleBooking(db *gorm.DB, id string, newStart time.Time, now time.Time) error {
	booking, err := GetBookingByID(db, id)
	if err != nil {
		return err
	}
	if !booking.IsEditable() {
		return ErrBookingNotEditable
	}

	eventType, err := GetEventTypeByID(db, booking.EventTypeID)
	if err != nil {
		return err
	}

	bookable, err := IsSlotBookable(db, eventType, newStart, now, booking.ID)
	if err != nil {
		return err
	}
	if !bookable {
		return ErrSlotNotAvailable
	}

	newEnd := newStart.Add(eventType.Duration())
	return db.Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_time":     newStart,
			"end_time":       newEnd,
			"scheduled_date": time.Date(newStart.Year(), newStart.Month(), newStart.Day(), 0, 0, 0, 0, time.UTC),
		}).Error
}

// CompletePastBookings marks elapsed bookings as completed. Runs from
// the hourly maintenance job.
func CompletePastBookings(db *gorm.DB, now time.Time) error {
	return db.Model(&models.Booking{}).
		Where("status IN (?) AND end_time < ?",
			[]string{models.BookingStatusScheduled, models.BookingStatusConfirmed}, now).
		Update("status", models.BookingStatusCompleted).Error
}
