package scheduling

import (
	"fmt"
	"time"

	"meet_flow_app_go/models"
)

// DaySchedule is the effective availability for one concrete date:
// the open window (nil when the day is closed) and the blocked
// sub-intervals layered on top of it. Blocked intervals may overlap
// each other; the conflict filter treats them independently.
type DaySchedule struct {
	Window  *Interval
	Blocked []Interval
}

// ParseClock parses a wall-clock "HH:MM" string into hour and minute.
// It is strict: anything else is a configuration error.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time format: expected HH:MM, got %q", value)
	}
	return t.Hour(), t.Minute(), nil
}

// clockOn anchors a wall-clock "HH:MM" string on a concrete date,
// keeping the date's location.
func clockOn(date time.Time, value string) (time.Time, error) {
	hour, minute, err := ParseClock(value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// ResolveDay computes the effective open window and blocked intervals
// for an event type on one calendar date.
//
// A full-day override closes the date regardless of weekly rules. A
// weekday without an OPEN rule has no window. Override ranges are
// additive: they block time on top of the weekly blackouts, they never
// replace them. Malformed rules fail closed: a rule whose times do not
// parse (or whose window is empty or inverted) is treated as absent.
func ResolveDay(eventType *models.EventType, date time.Time) DaySchedule {
	var schedule DaySchedule

	// 1. Full-day overrides win over everything
	for _, override := range eventType.Overrides {
		if override.AppliesTo(date) && override.BlocksWholeDay() {
			return schedule
		}
	}

	// 2. Find the open window for this weekday
	weekday := int(date.Weekday())
	for _, rule := range eventType.Rules {
		if rule.Kind != models.RuleKindOpen || rule.DayOfWeek != weekday {
			continue
		}
		start, err := clockOn(date, rule.StartTime)
		if err != nil {
			continue // fail closed
		}
		end, err := clockOn(date, rule.EndTime)
		if err != nil || !end.After(start) {
			continue // fail closed
		}
		schedule.Window = &Interval{Start: start, End: end}
		break // at most one open rule per weekday
	}

	if schedule.Window == nil {
		return schedule
	}

	// 3. Weekly blackout windows for this weekday
	for _, rule := range eventType.Rules {
		if rule.Kind != models.RuleKindBlackout || rule.DayOfWeek != weekday {
			continue
		}
		start, err := clockOn(date, rule.StartTime)
		if err != nil {
			continue
		}
		end, err := clockOn(date, rule.EndTime)
		if err != nil || !end.After(start) {
			continue
		}
		schedule.Blocked = append(schedule.Blocked, Interval{Start: start, End: end})
	}

	// 4. Override ranges for this date (additive)
	for _, override := range eventType.Overrides {
		if !override.AppliesTo(date) {
			continue
		}
		for _, r := range override.Ranges {
			start, err := clockOn(date, r.StartTime)
			if err != nil {
				continue
			}
			end, err := clockOn(date, r.EndTime)
			if err != nil || !end.After(start) {
				continue
			}
			schedule.Blocked = append(schedule.Blocked, Interval{Start: start, End: end})
		}
	}

	return schedule
}
