package services

import (
	"testing"
	"time"

	"meet_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.EventType{},
		&models.AvailabilityRule{},
		&models.DateOverride{},
		&models.OverrideRange{},
		&models.Booking{},
	)
	assert.NoError(t, err)

	return db
}

// seedEventType creates an event type open Mondays 09:00-17:00
func seedEventType(t *testing.T, db *gorm.DB, slug string, durationMinutes int) *models.EventType {
	eventType := &models.EventType{
		Name:            "Test " + slug,
		Slug:            slug,
		DurationMinutes: durationMinutes,
		IsActive:        true,
		Rules: []models.AvailabilityRule{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Kind: models.RuleKindOpen},
		},
	}
	err := CreateEventType(db, eventType)
	assert.NoError(t, err)
	return eventType
}

// 2026-01-05 is a Monday
var bookingMonday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// now well before the test week so minimum notice never interferes
var bookingNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestCreateBooking(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	start := bookingMonday.Add(10 * time.Hour)
	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    start,
	}

	err := CreateBooking(db, booking, bookingNow)
	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.NotEmpty(t, booking.BookingToken)
	assert.Equal(t, 30, booking.DurationMinutes)
	assert.Equal(t, start.Add(30*time.Minute), booking.EndTime)
	assert.Equal(t, bookingMonday, booking.ScheduledDate)
}

func TestCreateBookingConflict(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	start := bookingMonday.Add(10 * time.Hour)
	first := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    start,
	}
	assert.NoError(t, CreateBooking(db, first, bookingNow))

	second := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Grace Hopper",
		InviteeEmail: "grace@example.com",
		StartTime:    start,
	}
	err := CreateBooking(db, second, bookingNow)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBookingConflictAcrossEventTypes(t *testing.T) {
	db := setupBookingTestDB(t)
	intro := seedEventType(t, db, "intro", 30)
	deepDive := seedEventType(t, db, "deep-dive", 60)

	start := bookingMonday.Add(10 * time.Hour)
	first := &models.Booking{
		EventTypeID:  intro.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    start,
	}
	assert.NoError(t, CreateBooking(db, first, bookingNow))

	// The calendar is shared: a booking of one event type blocks the
	// same time for every other event type
	second := &models.Booking{
		EventTypeID:  deepDive.ID,
		InviteeName:  "Grace Hopper",
		InviteeEmail: "grace@example.com",
		StartTime:    start,
	}
	err := CreateBooking(db, second, bookingNow)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBookingOutsideOpenWindow(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	// 18:00 is past the 17:00 close
	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(18 * time.Hour),
	}
	err := CreateBooking(db, booking, bookingNow)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Tuesday has no open rule at all
	booking.StartTime = bookingMonday.AddDate(0, 0, 1).Add(10 * time.Hour)
	err = CreateBooking(db, booking, bookingNow)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCancelBookingReleasesSlot(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	start := bookingMonday.Add(10 * time.Hour)
	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    start,
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	err := CancelBooking(db, booking.ID, "cannot make it")
	assert.NoError(t, err)

	cancelled, err := GetBookingByID(db, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "cannot make it", *cancelled.CancellationReason)

	// Cancelling twice is rejected
	err = CancelBooking(db, booking.ID, "")
	assert.ErrorIs(t, err, ErrBookingNotCancelled)

	// The slot is free again
	rebooked := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Grace Hopper",
		InviteeEmail: "grace@example.com",
		StartTime:    start,
	}
	assert.NoError(t, CreateBooking(db, rebooked, bookingNow))
}

func TestRescheduleBooking(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	newStart := bookingMonday.Add(14 * time.Hour)
	err := RescheduleBooking(db, booking.ID, newStart, bookingNow)
	assert.NoError(t, err)

	moved, err := GetBookingByID(db, booking.ID)
	assert.NoError(t, err)
	assert.True(t, moved.StartTime.Equal(newStart))
	assert.True(t, moved.EndTime.Equal(newStart.Add(30*time.Minute)))
}

func TestRescheduleBookingExcludesItself(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	// The new time overlaps the booking's own current slot. It must not
	// collide with itself.
	err := RescheduleBooking(db, booking.ID, bookingMonday.Add(10*time.Hour).Add(15*time.Minute), bookingNow)
	assert.NoError(t, err)
}

func TestRescheduleBookingConflict(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	first := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, first, bookingNow))

	second := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Grace Hopper",
		InviteeEmail: "grace@example.com",
		StartTime:    bookingMonday.Add(11 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, second, bookingNow))

	// Moving onto someone else's slot is still rejected
	err := RescheduleBooking(db, second.ID, first.StartTime, bookingNow)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRescheduleCancelledBooking(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))
	assert.NoError(t, CancelBooking(db, booking.ID, ""))

	err := RescheduleBooking(db, booking.ID, bookingMonday.Add(14*time.Hour), bookingNow)
	assert.ErrorIs(t, err, ErrBookingNotEditable)
}

func TestGetAvailableSlots(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	loaded, err := GetEventTypeByID(db, eventType.ID)
	assert.NoError(t, err)

	slots, err := GetAvailableSlots(db, loaded, bookingMonday, bookingNow)
	assert.NoError(t, err)
	assert.NotEmpty(t, slots)
	assert.Equal(t, bookingMonday.Add(9*time.Hour), slots[0].StartTime)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	after, err := GetAvailableSlots(db, loaded, bookingMonday, bookingNow)
	assert.NoError(t, err)
	assert.Len(t, after, len(slots)-3) // 09:45, 10:00 and 10:15 all overlap the booking

	for _, slot := range after {
		assert.NotEqual(t, booking.StartTime, slot.StartTime)
	}
}

func TestGetRescheduleSlotsIncludeOwnTime(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	loaded, err := GetEventTypeByID(db, eventType.ID)
	assert.NoError(t, err)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	slots, err := GetRescheduleSlots(db, loaded, bookingMonday, bookingNow, booking.ID)
	assert.NoError(t, err)

	found := false
	for _, slot := range slots {
		if slot.StartTime.Equal(booking.StartTime) {
			found = true
		}
	}
	assert.True(t, found, "own slot should still be offered while rescheduling")
}

func TestGetEligibleDates(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	loaded, err := GetEventTypeByID(db, eventType.ID)
	assert.NoError(t, err)

	// A two week walk from the Monday: only the two Mondays qualify
	dates := GetEligibleDates(loaded, bookingMonday, 14, bookingNow)
	assert.Len(t, dates, 2)
	assert.Equal(t, bookingMonday, dates[0])
	assert.Equal(t, bookingMonday.AddDate(0, 0, 7), dates[1])
}

func TestGetBookingsBetween(t *testing.T) {
	db := setupBookingTestDB(t)
	intro := seedEventType(t, db, "intro", 30)
	deepDive := seedEventType(t, db, "deep-dive", 60)

	first := &models.Booking{
		EventTypeID:  intro.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(9 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, first, bookingNow))

	second := &models.Booking{
		EventTypeID:  deepDive.ID,
		InviteeName:  "Grace Hopper",
		InviteeEmail: "grace@example.com",
		StartTime:    bookingMonday.Add(14 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, second, bookingNow))

	// Both event types come back: the range query never filters by type
	bookings, err := GetBookingsBetween(db, bookingMonday, bookingMonday.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, first.ID, bookings[0].ID)
	assert.Equal(t, "Test intro", bookings[0].EventType.Name)

	// A range touching only the morning returns only the first
	morning, err := GetBookingsBetween(db, bookingMonday, bookingMonday.Add(10*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, morning, 1)
}

func TestGetBookingByToken(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	found, err := GetBookingByToken(db, booking.BookingToken)
	assert.NoError(t, err)
	assert.Equal(t, booking.ID, found.ID)
	assert.Equal(t, "Test intro", found.EventType.Name)

	_, err = GetBookingByToken(db, "no-such-token")
	assert.Error(t, err)
}

func TestCompletePastBookings(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	past := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(9 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, past, bookingNow))

	future := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Grace Hopper",
		InviteeEmail: "grace@example.com",
		StartTime:    bookingMonday.AddDate(0, 0, 7).Add(9 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, future, bookingNow))

	cancelled := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Alan Turing",
		InviteeEmail: "alan@example.com",
		StartTime:    bookingMonday.Add(11 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, cancelled, bookingNow))
	assert.NoError(t, CancelBooking(db, cancelled.ID, ""))

	// Run the sweep the day after the first Monday
	err := CompletePastBookings(db, bookingMonday.AddDate(0, 0, 1))
	assert.NoError(t, err)

	check := func(id, want string) {
		b, err := GetBookingByID(db, id)
		assert.NoError(t, err)
		assert.Equal(t, want, b.Status)
	}
	check(past.ID, models.BookingStatusCompleted)
	check(future.ID, models.BookingStatusScheduled)
	check(cancelled.ID, models.BookingStatusCancelled)
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupBookingTestDB(t)
	eventType := seedEventType(t, db, "intro", 30)

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  "Ada Lovelace",
		InviteeEmail: "ada@example.com",
		StartTime:    bookingMonday.Add(10 * time.Hour),
	}
	assert.NoError(t, CreateBooking(db, booking, bookingNow))

	assert.NoError(t, UpdateBookingStatus(db, booking.ID, models.BookingStatusNoShow))
	updated, err := GetBookingByID(db, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusNoShow, updated.Status)

	err = UpdateBookingStatus(db, booking.ID, "NOT_A_STATUS")
	assert.Error(t, err)
}
