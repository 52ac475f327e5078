package scheduling

import (
	"time"

	"meet_flow_app_go/models"
)

// IsBookable decides whether a candidate slot may be offered.
//
// The candidate is rejected when it starts before the minimum-notice
// cutoff, when it touches any blocked interval (exact bounds; buffers
// do not apply to weekly or override blackouts), or when its buffered
// form overlaps the buffered form of any booking occupying the same
// calendar date. Buffers are a property of the event type being
// scheduled and are applied symmetrically to both sides of the
// comparison, protecting the new slot from its neighbors.
//
// excludeBookingID removes one booking from the conflict set; the
// reschedule flow passes the booking being moved so it cannot conflict
// with itself.
func IsBookable(candidate Interval, schedule DaySchedule, bookings []models.Booking, eventType *models.EventType, cutoff time.Time, excludeBookingID string) bool {
	if candidate.Start.Before(cutoff) {
		return false
	}

	for _, blocked := range schedule.Blocked {
		if candidate.Overlaps(blocked) {
			return false
		}
	}

	before := time.Duration(eventType.BufferBeforeMinutes) * time.Minute
	after := time.Duration(eventType.BufferAfterMinutes) * time.Minute
	buffered := candidate.Padded(before, after)

	for _, booking := range bookings {
		if !booking.BlocksCalendar() {
			continue
		}
		if excludeBookingID != "" && booking.ID == excludeBookingID {
			continue
		}
		if !SameDate(booking.StartTime, candidate.Start) {
			continue
		}
		occupied := Interval{Start: booking.StartTime, End: booking.EndTime}
		if buffered.Overlaps(occupied.Padded(before, after)) {
			return false
		}
	}

	return true
}
