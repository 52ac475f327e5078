package services

import (
	"errors"

	"meet_flow_app_go/models"

	"gorm.io/gorm"
)

// GetEventTypes returns all event types
func GetEventTypes(db *gorm.DB) ([]models.EventType, error) {
	var types []models.EventType
	err := db.Order(`"order" asc, name asc`).Find(&types).Error
	return types, err
}

// GetActiveEventTypes returns only event types open for booking
func GetActiveEventTypes(db *gorm.DB) ([]models.EventType, error) {
	var types []models.EventType
	err := db.Where("is_active = ?", true).
		Order(`"order" asc, name asc`).
		Find(&types).Error
	return types, err
}

// GetEventTypeByID fetches a single event type with its rules and overrides
func GetEventTypeByID(db *gorm.DB, id string) (*models.EventType, error) {
	var eventType models.EventType
	err := db.Preload("Rules").Preload("Overrides.Ranges").
		First(&eventType, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &eventType, nil
}

// GetEventTypeBySlug fetches a single event type by its public slug
func GetEventTypeBySlug(db *gorm.DB, slug string) (*models.EventType, error) {
	var eventType models.EventType
	err := db.Preload("Rules").Preload("Overrides.Ranges").
		First(&eventType, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &eventType, nil
}

// CreateEventType creates a new event type after basic validation
func CreateEventType(db *gorm.DB, eventType *models.EventType) error {
	if eventType.DurationMinutes <= 0 {
		return errors.New("duration must be positive")
	}
	if eventType.BufferBeforeMinutes < 0 || eventType.BufferAfterMinutes < 0 {
		return errors.New("buffers cannot be negative")
	}
	if eventType.MinimumNoticeMinutes < 0 {
		return errors.New("minimum notice cannot be negative")
	}
	if eventType.BookingHorizonDays != nil && *eventType.BookingHorizonDays < 0 {
		return errors.New("booking horizon cannot be negative")
	}
	if eventType.SlotGranularityMinutes == 0 {
		eventType.SlotGranularityMinutes = models.DefaultSlotGranularityMinutes
	}
	return db.Create(eventType).Error
}

// UpdateEventType updates an event type
func UpdateEventType(db *gorm.DB, id string, updates map[string]interface{}) error {
	if duration, ok := updates["duration_minutes"].(int); ok && duration <= 0 {
		return errors.New("duration must be positive")
	}
	return db.Model(&models.EventType{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteEventType soft deletes an event type
func DeleteEventType(db *gorm.DB, id string) error {
	return db.Delete(&models.EventType{}, "id = ?", id).Error
}

// EnsureDefaultEventTypes creates default event types if none exist yet
func EnsureDefaultEventTypes(db *gorm.DB) error {
	var count int64
	db.Model(&models.EventType{}).Count(&count)
	if count == 0 {
		return models.CreateDefaultEventTypes(db)
	}
	return nil
}
