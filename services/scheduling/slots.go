package scheduling

import (
	"time"

	"meet_flow_app_go/models"
)

// GenerateSlots produces the ordered list of bookable slots for an
// event type on one calendar date, given the full booking snapshot and
// an externally supplied clock reading. The function is pure: identical
// inputs (including now) always yield identical output.
//
// Candidate starts are walked at the event type's slot granularity
// across the resolved open window. The walk terminates as soon as a
// candidate would end past the window, since no later start can fit.
//
// bookings must be the snapshot across ALL event types: the underlying
// calendar is a single shared resource and every commitment on it
// blocks every other event type.
func GenerateSlots(eventType *models.EventType, date time.Time, bookings []models.Booking, now time.Time, excludeBookingID string) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0)

	if eventType.DurationMinutes <= 0 {
		return slots // fail closed on malformed configuration
	}

	schedule := ResolveDay(eventType, date)
	if schedule.Window == nil {
		return slots
	}

	duration := eventType.Duration()
	step := eventType.Granularity()
	cutoff := now.Add(time.Duration(eventType.MinimumNoticeMinutes) * time.Minute)

	for start := schedule.Window.Start; ; start = start.Add(step) {
		candidate := Interval{Start: start, End: start.Add(duration)}
		if candidate.End.After(schedule.Window.End) {
			break
		}
		if IsBookable(candidate, schedule, bookings, eventType, cutoff, excludeBookingID) {
			slots = append(slots, models.TimeSlot{
				StartTime: candidate.Start,
				EndTime:   candidate.End,
			})
		}
	}

	return slots
}
