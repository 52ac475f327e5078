package scheduling

import (
	"time"

	"meet_flow_app_go/models"
)

// dateOnly truncates an instant to midnight of its calendar date
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateEligible decides whether a date may be offered on the day
// picker at all, without running full slot generation.
//
// Past dates are never eligible. Today always is; per-slot notice
// filtering happens in the slot generator. Dates beyond the booking
// horizon are excluded when one is configured, and so are dates the
// rule resolver closes (no weekly rule, or fully blocked by override).
func IsDateEligible(eventType *models.EventType, date, today time.Time) bool {
	day := dateOnly(date)
	start := dateOnly(today)

	if day.Before(start) {
		return false
	}
	if eventType.BookingHorizonDays != nil {
		horizon := start.AddDate(0, 0, *eventType.BookingHorizonDays)
		if day.After(horizon) {
			return false
		}
	}
	return ResolveDay(eventType, day).Window != nil
}
