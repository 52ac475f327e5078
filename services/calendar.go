package services

import (
	"fmt"
	"time"

	"meet_flow_app_go/models"
)

// GenerateBookingICS generates an ICS file content for a booking so
// invitees can add it to their own calendar.
// Booking times are stored in UTC.
func GenerateBookingICS(booking *models.Booking, organizerName, organizerEmail string) ([]byte, error) {
	// Format dates for ICS (YYYYMMDDTHHMMSSZ)
	dateFormat := "20060102T150405Z"
	dtStamp := time.Now().UTC().Format(dateFormat)
	dtStart := booking.StartTime.UTC().Format(dateFormat)
	dtEnd := booking.EndTime.UTC().Format(dateFormat)

	summary := fmt.Sprintf("Meeting with %s", organizerName)
	if booking.EventType.Name != "" {
		summary = fmt.Sprintf("%s: %s", booking.EventType.Name, organizerName)
	}

	description := fmt.Sprintf("Meeting booked by %s.", booking.InviteeName)
	if booking.Notes != nil && *booking.Notes != "" {
		description += fmt.Sprintf("\n\nNotes: %s", *booking.Notes)
	}

	const icsTemplate = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//MeetFlow//Booking//EN
CALSCALE:GREGORIAN
METHOD:REQUEST
BEGIN:VEVENT
UID:%s
DTSTAMP:%s
DTSTART:%s
DTEND:%s
SUMMARY:%s
DESCRIPTION:%s
ORGANIZER;CN="%s":mailto:%s
STATUS:CONFIRMED
END:VEVENT
END:VCALENDAR`

	icsContent := fmt.Sprintf(icsTemplate,
		booking.ID,     // UID
		dtStamp,        // DTSTAMP
		dtStart,        // DTSTART
		dtEnd,          // DTEND
		summary,        // SUMMARY
		description,    // DESCRIPTION
		organizerName,  // ORGANIZER CN
		organizerEmail, // ORGANIZER MAILTO
	)

	return []byte(icsContent), nil
}
