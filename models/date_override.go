package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateOverride represents a one-off exception for a concrete calendar
// date. An override with no ranges blocks the whole date regardless of
// weekly rules; an override with ranges blocks those ranges in addition
// to the recurring weekly blackouts.
type DateOverride struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EventTypeID string    `gorm:"type:uuid;index;not null" json:"event_type_id"`
	Date        time.Time `gorm:"type:date;index;not null" json:"date"` // Date only, midnight UTC
	Reason      string    `json:"reason"`                               // "Vacation", "Holiday", "Personal", "Other"

	// Relationships
	EventType EventType       `gorm:"foreignKey:EventTypeID" json:"event_type,omitempty"`
	Ranges    []OverrideRange `gorm:"foreignKey:OverrideID" json:"ranges,omitempty"`
}

// BeforeCreate hook to generate UUID
func (o *DateOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for DateOverride model
func (DateOverride) TableName() string {
	return "date_overrides"
}

// BlocksWholeDay reports whether this override closes the date entirely
func (o *DateOverride) BlocksWholeDay() bool {
	return len(o.Ranges) == 0
}

// AppliesTo checks if this override targets the given calendar date
func (o *DateOverride) AppliesTo(date time.Time) bool {
	return o.Date.Year() == date.Year() &&
		o.Date.Month() == date.Month() &&
		o.Date.Day() == date.Day()
}

// OverrideRange is one blocked wall-clock range inside a DateOverride
type OverrideRange struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OverrideID string `gorm:"type:uuid;index;not null" json:"override_id"`
	StartTime  string `gorm:"not null" json:"start_time"` // "10:00"
	EndTime    string `gorm:"not null" json:"end_time"`   // "11:00"
}

// BeforeCreate hook to generate UUID
func (r *OverrideRange) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for OverrideRange model
func (OverrideRange) TableName() string {
	return "override_ranges"
}
