package scheduling

import (
	"testing"
	"time"

	"meet_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestIsDateEligible(t *testing.T) {
	et := openMondayEventType()
	today := monday // Monday

	// Past dates never qualify
	assert.False(t, IsDateEligible(et, monday.AddDate(0, 0, -7), today))

	// Today always qualifies when a window exists; per-slot notice
	// filtering happens later in the generator
	assert.True(t, IsDateEligible(et, monday, today))

	// A weekday without an open rule is not clickable
	assert.False(t, IsDateEligible(et, monday.AddDate(0, 0, 1), today))

	// Next Monday has a window again
	assert.True(t, IsDateEligible(et, monday.AddDate(0, 0, 7), today))
}

func TestIsDateEligibleHorizon(t *testing.T) {
	et := openMondayEventType()
	horizon := 10
	et.BookingHorizonDays = &horizon
	today := monday

	// Monday one week out: within the 10 day horizon
	assert.True(t, IsDateEligible(et, monday.AddDate(0, 0, 7), today))
	// Monday two weeks out: beyond it
	assert.False(t, IsDateEligible(et, monday.AddDate(0, 0, 14), today))
}

func TestIsDateEligibleUnboundedHorizon(t *testing.T) {
	et := openMondayEventType() // BookingHorizonDays nil
	assert.True(t, IsDateEligible(et, monday.AddDate(0, 0, 70), monday))
}

func TestIsDateEligibleFullDayOverride(t *testing.T) {
	et := openMondayEventType()
	nextMonday := monday.AddDate(0, 0, 7)
	et.Overrides = []models.DateOverride{{Date: nextMonday, Reason: "Holiday"}}

	assert.False(t, IsDateEligible(et, nextMonday, monday))
	assert.True(t, IsDateEligible(et, nextMonday.AddDate(0, 0, 7), monday))
}

func TestIsDateEligibleIgnoresTimeOfDay(t *testing.T) {
	et := openMondayEventType()
	lateToday := time.Date(2026, time.January, 5, 23, 30, 0, 0, time.UTC)

	assert.True(t, IsDateEligible(et, monday, lateToday))
}
