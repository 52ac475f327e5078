package services

import (
	"errors"
	"time"

	"meet_flow_app_go/models"
	"meet_flow_app_go/services/scheduling"

	"gorm.io/gorm"
)

// GetAvailabilityRules fetches all weekly rules for an event type
func GetAvailabilityRules(db *gorm.DB, eventTypeID string) ([]models.AvailabilityRule, error) {
	var rules []models.AvailabilityRule
	err := db.Where("event_type_id = ?", eventTypeID).
		Order("day_of_week, start_time").
		Find(&rules).Error
	return rules, err
}

// GetAvailabilityRuleByID fetches a single weekly rule
func GetAvailabilityRuleByID(db *gorm.DB, id string) (*models.AvailabilityRule, error) {
	var rule models.AvailabilityRule
	err := db.First(&rule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ValidateRuleTimes checks that a rule's clock strings parse and form a
// non-empty window
func ValidateRuleTimes(startTime, endTime string) error {
	startHour, startMin, err := scheduling.ParseClock(startTime)
	if err != nil {
		return err
	}
	endHour, endMin, err := scheduling.ParseClock(endTime)
	if err != nil {
		return err
	}
	if endHour*60+endMin <= startHour*60+startMin {
		return errors.New("end time must be after start time")
	}
	return nil
}

// CreateAvailabilityRule adds a new weekly rule. An event type may have
// at most one OPEN rule per weekday; blackout rules are unrestricted.
func CreateAvailabilityRule(db *gorm.DB, rule *models.AvailabilityRule) error {
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return errors.New("day of week must be between 0 and 6")
	}
	if !models.IsValidRuleKind(rule.Kind) {
		return errors.New("invalid rule kind")
	}
	if err := ValidateRuleTimes(rule.StartTime, rule.EndTime); err != nil {
		return err
	}

	if rule.Kind == models.RuleKindOpen {
		var count int64
		err := db.Model(&models.AvailabilityRule{}).
			Where("event_type_id = ? AND day_of_week = ? AND kind = ?",
				rule.EventTypeID, rule.DayOfWeek, models.RuleKindOpen).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.New("an open window already exists for this weekday")
		}
	}

	return db.Create(rule).Error
}

// UpdateAvailabilityRule updates an existing weekly rule
func UpdateAvailabilityRule(db *gorm.DB, rule *models.AvailabilityRule) error {
	if err := ValidateRuleTimes(rule.StartTime, rule.EndTime); err != nil {
		return err
	}
	return db.Save(rule).Error
}

// DeleteAvailabilityRule removes a weekly rule
func DeleteAvailabilityRule(db *gorm.DB, id string) error {
	return db.Delete(&models.AvailabilityRule{}, "id = ?", id).Error
}

// CheckRuleOverlap checks if a new or updated blackout rule overlaps
// with existing rules of the same kind on the same weekday
func CheckRuleOverlap(db *gorm.DB, eventTypeID string, dayOfWeek int, startTime, endTime, kind, excludeRuleID string) (bool, error) {
	var count int64
	query := db.Model(&models.AvailabilityRule{}).
		Where("event_type_id = ? AND day_of_week = ? AND kind = ?", eventTypeID, dayOfWeek, kind).
		Where("((start_time < ? AND end_time > ?) OR (start_time >= ? AND start_time < ?) OR (end_time > ? AND end_time <= ?))",
			endTime, startTime, startTime, endTime, startTime, endTime)

	if excludeRuleID != "" {
		query = query.Where("id != ?", excludeRuleID)
	}

	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetDateOverrides fetches all overrides for an event type in a date range
func GetDateOverrides(db *gorm.DB, eventTypeID string, startDate, endDate time.Time) ([]models.DateOverride, error) {
	var overrides []models.DateOverride
	err := db.Preload("Ranges").
		Where("event_type_id = ? AND date >= ? AND date < ?", eventTypeID, startDate, endDate).
		Order("date asc").
		Find(&overrides).Error
	return overrides, err
}

// GetAllDateOverrides fetches upcoming overrides for an event type
func GetAllDateOverrides(db *gorm.DB, eventTypeID string) ([]models.DateOverride, error) {
	var overrides []models.DateOverride
	err := db.Preload("Ranges").
		Where("event_type_id = ? AND date >= ?", eventTypeID, time.Now().UTC().Truncate(24*time.Hour)).
		Order("date asc").
		Find(&overrides).Error
	return overrides, err
}

// GetDateOverrideByID fetches a single override with its ranges
func GetDateOverrideByID(db *gorm.DB, id string) (*models.DateOverride, error) {
	var override models.DateOverride
	err := db.Preload("Ranges").First(&override, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

// CreateDateOverride adds a new override. Each of its ranges must be a
// valid wall-clock window; an override with no ranges blocks the whole
// date.
func CreateDateOverride(db *gorm.DB, override *models.DateOverride) error {
	for _, r := range override.Ranges {
		if err := ValidateRuleTimes(r.StartTime, r.EndTime); err != nil {
			return err
		}
	}
	return db.Create(override).Error
}

// DeleteDateOverride removes an override and its ranges
func DeleteDateOverride(db *gorm.DB, id string) error {
	if err := db.Delete(&models.OverrideRange{}, "override_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&models.DateOverride{}, "id = ?", id).Error
}

// HasAvailabilityRules checks if an event type has any open windows configured
func HasAvailabilityRules(db *gorm.DB, eventTypeID string) (bool, error) {
	var count int64
	err := db.Model(&models.AvailabilityRule{}).
		Where("event_type_id = ? AND kind = ?", eventTypeID, models.RuleKindOpen).
		Count(&count).Error
	return count > 0, err
}
