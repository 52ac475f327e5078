package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking status constants
const (
	BookingStatusScheduled = "SCHEDULED"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusNoShow    = "NO_SHOW"
)

// Booking represents a confirmed instance of an event type: one visitor
// holding one time slot on the shared calendar.
type Booking struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Event type relationship
	EventTypeID string    `gorm:"type:uuid;index;not null" json:"event_type_id"`
	EventType   EventType `gorm:"foreignKey:EventTypeID" json:"event_type,omitempty"`

	// Invitee snapshot (preserved even if the visitor rebooks later)
	InviteeName  string  `gorm:"size:200;not null" json:"invitee_name"`
	InviteeEmail string  `gorm:"size:255;not null;index" json:"invitee_email"`
	InviteePhone *string `gorm:"size:20" json:"invitee_phone,omitempty"`

	// Schedule
	ScheduledDate   time.Time `gorm:"type:date;index;not null" json:"scheduled_date"` // Date only for queries
	StartTime       time.Time `gorm:"not null;index" json:"start_time"`               // Full datetime (UTC)
	EndTime         time.Time `gorm:"not null;index" json:"end_time"`                 // Full datetime (UTC)
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`

	// Status
	Status             string     `gorm:"size:20;default:'SCHEDULED';index" json:"status"`
	CancellationReason *string    `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	// Public access token (for reschedule/cancel via email link)
	BookingToken string `gorm:"type:uuid;uniqueIndex;not null" json:"booking_token"`

	// Set once the day-before reminder email has gone out
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`

	// Set when this booking was produced by rescheduling another one
	RescheduledFromID *string `gorm:"type:uuid" json:"rescheduled_from_id,omitempty"`

	// Notes from the invitee (sanitized at the handler boundary)
	Notes *string `gorm:"type:text" json:"notes,omitempty"`
}

// BeforeCreate hook to generate UUID and BookingToken
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.BookingToken == "" {
		b.BookingToken = uuid.New().String()
	}
	// Calculate duration if not set
	if b.DurationMinutes == 0 && !b.EndTime.IsZero() && !b.StartTime.IsZero() {
		b.DurationMinutes = int(b.EndTime.Sub(b.StartTime).Minutes())
	}
	// Set ScheduledDate from StartTime if not set
	if b.ScheduledDate.IsZero() && !b.StartTime.IsZero() {
		b.ScheduledDate = time.Date(b.StartTime.Year(), b.StartTime.Month(), b.StartTime.Day(), 0, 0, 0, 0, time.UTC)
	}
	return nil
}

// TableName specifies the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsValidBookingStatus checks if the status is valid
func IsValidBookingStatus(status string) bool {
	validStatuses := []string{
		BookingStatusScheduled,
		BookingStatusConfirmed,
		BookingStatusCancelled,
		BookingStatusCompleted,
		BookingStatusNoShow,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsCancellable checks if the booking can be cancelled
func (b *Booking) IsCancellable() bool {
	return b.Status == BookingStatusScheduled || b.Status == BookingStatusConfirmed
}

// IsEditable checks if the booking can still be rescheduled
func (b *Booking) IsEditable() bool {
	return b.Status == BookingStatusScheduled || b.Status == BookingStatusConfirmed
}

// BlocksCalendar reports whether this booking occupies calendar time
// for conflict purposes. Cancelled and no-show bookings release their
// slot.
func (b *Booking) BlocksCalendar() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusNoShow
}

// Duration returns the duration of the booking in minutes
func (b *Booking) Duration() int {
	if b.DurationMinutes > 0 {
		return b.DurationMinutes
	}
	return int(b.EndTime.Sub(b.StartTime).Minutes())
}

// TimeSlot represents an available time slot offered for booking
type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
