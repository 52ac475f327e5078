package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSlotGranularityMinutes is the step used when walking an open
// window for candidate slot starts. Event types may override it.
const DefaultSlotGranularityMinutes = 15

// EventType represents a bookable meeting template: duration, buffers,
// notice requirements and the weekly availability pattern visitors book
// instances of.
type EventType struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"` // "Intro Call", "Deep Dive"
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	DurationMinutes        int  `gorm:"default:30;not null" json:"duration_minutes"`
	BufferBeforeMinutes    int  `gorm:"default:0" json:"buffer_before_minutes"`
	BufferAfterMinutes     int  `gorm:"default:0" json:"buffer_after_minutes"`
	MinimumNoticeMinutes   int  `gorm:"default:0" json:"minimum_notice_minutes"`
	BookingHorizonDays     *int `json:"booking_horizon_days,omitempty"` // nil = unbounded future
	SlotGranularityMinutes int  `gorm:"default:15" json:"slot_granularity_minutes"`

	Color    string `gorm:"size:7;default:'#3B82F6'" json:"color"` // Hex color for calendar
	IsActive bool   `gorm:"default:true;index" json:"is_active"`
	Order    int    `gorm:"default:0" json:"order"` // Display ordering

	// Relationships
	Rules     []AvailabilityRule `gorm:"foreignKey:EventTypeID" json:"rules,omitempty"`
	Overrides []DateOverride     `gorm:"foreignKey:EventTypeID" json:"overrides,omitempty"`
	Bookings  []Booking          `gorm:"foreignKey:EventTypeID" json:"bookings,omitempty"`
}

// BeforeCreate hook to generate UUID
func (et *EventType) BeforeCreate(tx *gorm.DB) error {
	if et.ID == "" {
		et.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (EventType) TableName() string {
	return "event_types"
}

// Granularity returns the slot walk step, falling back to the default
// when the stored value is missing or nonsensical.
func (et *EventType) Granularity() time.Duration {
	if et.SlotGranularityMinutes <= 0 {
		return DefaultSlotGranularityMinutes * time.Minute
	}
	return time.Duration(et.SlotGranularityMinutes) * time.Minute
}

// Duration returns the meeting length as a time.Duration.
func (et *EventType) Duration() time.Duration {
	return time.Duration(et.DurationMinutes) * time.Minute
}

// Default event types for new installs
var DefaultEventTypes = []struct {
	Name            string
	Slug            string
	Description     string
	DurationMinutes int
	Color           string
	Order           int
}{
	{"Intro Call", "intro-call", "Short introductory conversation", 15, "#10B981", 1},
	{"Standard Meeting", "standard-meeting", "Regular 30 minute meeting", 30, "#3B82F6", 2},
	{"Working Session", "working-session", "Extended 60 minute working session", 60, "#8B5CF6", 3},
}

// CreateDefaultEventTypes creates default event types for a fresh install
func CreateDefaultEventTypes(db *gorm.DB) error {
	for _, t := range DefaultEventTypes {
		et := &EventType{
			Name:                   t.Name,
			Slug:                   t.Slug,
			Description:            t.Description,
			DurationMinutes:        t.DurationMinutes,
			SlotGranularityMinutes: DefaultSlotGranularityMinutes,
			Color:                  t.Color,
			Order:                  t.Order,
			IsActive:               true,
		}
		if err := db.Create(et).Error; err != nil {
			return err
		}
	}
	return nil
}
