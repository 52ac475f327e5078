package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability rule kinds
const (
	RuleKindOpen     = "OPEN"     // recurring weekly open window
	RuleKindBlackout = "BLACKOUT" // recurring weekly blocked window
)

// AvailabilityRule represents one recurring weekly window for an event
// type: either the open hours on a weekday or a blackout layered on top
// of them. At most one OPEN rule may exist per weekday; a weekday with
// no OPEN rule has no bookable hours at all.
type AvailabilityRule struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EventTypeID string `gorm:"type:uuid;index;not null" json:"event_type_id"`
	DayOfWeek   int    `gorm:"not null" json:"day_of_week"`              // 0=Sunday...6=Saturday
	StartTime   string `gorm:"not null" json:"start_time"`               // "09:00"
	EndTime     string `gorm:"not null" json:"end_time"`                 // "17:00"
	Kind        string `gorm:"size:20;default:'OPEN';index" json:"kind"` // OPEN or BLACKOUT

	// Relationships
	EventType EventType `gorm:"foreignKey:EventTypeID" json:"event_type,omitempty"`
}

// BeforeCreate hook to generate UUID
func (r *AvailabilityRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for AvailabilityRule model
func (AvailabilityRule) TableName() string {
	return "availability_rules"
}

// IsValidRuleKind checks if the kind is valid
func IsValidRuleKind(kind string) bool {
	return kind == RuleKindOpen || kind == RuleKindBlackout
}

// DayName returns the name of the day
func (r *AvailabilityRule) DayName() string {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if r.DayOfWeek >= 0 && r.DayOfWeek < 7 {
		return days[r.DayOfWeek]
	}
	return ""
}
