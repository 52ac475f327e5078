package handlers

import (
	"net/http"
	"time"

	"meet_flow_app_go/db"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"
	"meet_flow_app_go/services/scheduling"

	"github.com/labstack/echo/v4"
)

// parseRangeParam accepts RFC3339 or plain YYYY-MM-DD
func parseRangeParam(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// CalendarEventsHandler returns bookings in a range as calendar events,
// each carrying the fractional column layout so overlapping bookings
// render side by side instead of on top of each other.
func CalendarEventsHandler(c echo.Context) error {
	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")
	if startStr == "" || endStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end dates are required")
	}

	startTime, err := parseRangeParam(startStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date format")
	}
	endTime, err := parseRangeParam(endStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date format")
	}

	var bookings []models.Booking
	var dbErr error

	// Display may be filtered to one event type; conflicts never are
	if eventTypeID := c.QueryParam("event_type_id"); eventTypeID != "" {
		bookings, dbErr = services.GetEventTypeBookings(db.DB, eventTypeID, startTime, endTime)
	} else {
		bookings, dbErr = services.GetBookingsBetween(db.DB, startTime, endTime)
	}
	if dbErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch events")
	}

	// Group by day and lay out each day's overlaps
	byDay := make(map[string][]models.Booking)
	dayOrder := make([]string, 0)
	for _, booking := range bookings {
		if !booking.BlocksCalendar() {
			continue
		}
		key := booking.StartTime.Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			dayOrder = append(dayOrder, key)
		}
		byDay[key] = append(byDay[key], booking)
	}

	events := make([]map[string]interface{}, 0, len(bookings))
	for _, day := range dayOrder {
		for _, layout := range scheduling.LayoutDay(byDay[day]) {
			booking := layout.Booking

			color := "#3B82F6" // Default blue
			title := "Booking - " + booking.InviteeName
			if booking.EventType.ID != "" {
				if booking.EventType.Color != "" {
					color = booking.EventType.Color
				}
				title = booking.EventType.Name + " - " + booking.InviteeName
			}

			events = append(events, map[string]interface{}{
				"id":              booking.ID,
				"title":           title,
				"start":           booking.StartTime.Format(time.RFC3339),
				"end":             booking.EndTime.Format(time.RFC3339),
				"backgroundColor": color,
				"borderColor":     color,
				"extendedProps": map[string]interface{}{
					"inviteeName":        booking.InviteeName,
					"status":             booking.Status,
					"widthFraction":      layout.WidthFraction,
					"leftOffsetFraction": layout.LeftOffsetFraction,
				},
			})
		}
	}

	return c.JSON(http.StatusOK, events)
}
