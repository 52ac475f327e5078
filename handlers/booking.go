package handlers

import (
	"errors"
	"net/http"
	"time"

	"meet_flow_app_go/config"
	"meet_flow_app_go/db"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// notePolicy strips all HTML from invitee-provided text
var notePolicy = bluemonday.StrictPolicy()

// getConfig retrieves the app config placed on the context by main
func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{EmailTestMode: true}
}

// GetSlotsHandler returns available slots for an event type and date (JSON)
func GetSlotsHandler(c echo.Context) error {
	eventType, err := services.GetEventTypeBySlug(db.DB, c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}
	if !eventType.IsActive {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	date, err := services.ParseDate(dateStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	slots, err := services.GetAvailableSlots(db.DB, eventType, date, time.Now().UTC())
	if err != nil {
		// A store failure is an error, not an empty day
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute availability")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"slots": slots,
		"date":  dateStr,
	})
}

// GetEligibleDaysHandler returns the dates worth offering on the day picker
func GetEligibleDaysHandler(c echo.Context) error {
	eventType, err := services.GetEventTypeBySlug(db.DB, c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	// An event type with no open rules has no eligible days; skip the walk
	hasRules, err := services.HasAvailabilityRules(db.DB, eventType.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check availability")
	}
	if !hasRules {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"dates": []string{},
		})
	}

	today := time.Now().UTC()
	from := today
	if fromStr := c.QueryParam("from"); fromStr != "" {
		from, err = services.ParseDate(fromStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from date")
		}
	}

	days := 30
	if daysStr := c.QueryParam("days"); daysStr != "" {
		parsed, err := parsePositiveInt(daysStr, 90)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid days value")
		}
		days = parsed
	}

	dates := services.GetEligibleDates(eventType, from, days, today)
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format("2006-01-02"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"dates": formatted,
	})
}

// SubmitBookingHandler handles a public booking submission
func SubmitBookingHandler(c echo.Context) error {
	eventType, err := services.GetEventTypeBySlug(db.DB, c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}
	if !eventType.IsActive {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	var req struct {
		StartTime    string `json:"start_time" form:"start_time"` // RFC3339
		InviteeName  string `json:"invitee_name" form:"invitee_name"`
		InviteeEmail string `json:"invitee_email" form:"invitee_email"`
		InviteePhone string `json:"invitee_phone" form:"invitee_phone"`
		Notes        string `json:"notes" form:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.StartTime == "" || req.InviteeName == "" || req.InviteeEmail == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time, invitee_name and invitee_email are required")
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start_time format")
	}

	booking := &models.Booking{
		EventTypeID:  eventType.ID,
		InviteeName:  req.InviteeName,
		InviteeEmail: req.InviteeEmail,
		StartTime:    startTime.UTC(),
		Status:       models.BookingStatusScheduled,
	}
	if req.InviteePhone != "" {
		booking.InviteePhone = &req.InviteePhone
	}
	if req.Notes != "" {
		notes := notePolicy.Sanitize(req.Notes)
		booking.Notes = &notes
	}

	if err := services.CreateBooking(db.DB, booking, time.Now().UTC()); err != nil {
		if errors.Is(err, services.ErrSlotNotAvailable) {
			return echo.NewHTTPError(http.StatusConflict, "Selected time is no longer available")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create booking")
	}

	booking.EventType = *eventType
	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildBookingConfirmationEmail(cfg, booking))

	return c.JSON(http.StatusCreated, booking)
}

// GetBookingByTokenHandler returns a booking via its public token
func GetBookingByTokenHandler(c echo.Context) error {
	booking, err := services.GetBookingByToken(db.DB, c.Param("token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch booking")
	}
	return c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler cancels a booking via its public token
func CancelBookingHandler(c echo.Context) error {
	booking, err := services.GetBookingByToken(db.DB, c.Param("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}

	var req struct {
		Reason string `json:"reason" form:"reason"`
	}
	_ = c.Bind(&req)

	if err := services.CancelBooking(db.DB, booking.ID, notePolicy.Sanitize(req.Reason)); err != nil {
		if errors.Is(err, services.ErrBookingNotCancelled) {
			return echo.NewHTTPError(http.StatusConflict, "Booking cannot be cancelled")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to cancel booking")
	}

	booking, err = services.GetBookingByID(db.DB, booking.ID)
	if err == nil {
		cfg := getConfig(c)
		services.SendEmailAsync(cfg, services.BuildBookingCancelledEmail(cfg, booking))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": models.BookingStatusCancelled})
}

// GetRescheduleSlotsHandler returns slots for moving an existing
// booking; the booking itself does not block its own alternatives
func GetRescheduleSlotsHandler(c echo.Context) error {
	booking, err := services.GetBookingByToken(db.DB, c.Param("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}

	eventType, err := services.GetEventTypeByID(db.DB, booking.EventTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event type")
	}

	date, err := services.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	slots, err := services.GetRescheduleSlots(db.DB, eventType, date, time.Now().UTC(), booking.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute availability")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"slots": slots})
}

// RescheduleBookingHandler moves a booking to a new time via its public token
func RescheduleBookingHandler(c echo.Context) error {
	booking, err := services.GetBookingByToken(db.DB, c.Param("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}

	var req struct {
		StartTime string `json:"start_time" form:"start_time"` // RFC3339
	}
	if err := c.Bind(&req); err != nil || req.StartTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time is required")
	}

	newStart, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start_time format")
	}

	oldStart := booking.StartTime
	if err := services.RescheduleBooking(db.DB, booking.ID, newStart.UTC(), time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, services.ErrSlotNotAvailable):
			return echo.NewHTTPError(http.StatusConflict, "New time is not available")
		case errors.Is(err, services.ErrBookingNotEditable):
			return echo.NewHTTPError(http.StatusConflict, "Booking cannot be rescheduled")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reschedule booking")
		}
	}

	updated, err := services.GetBookingByID(db.DB, booking.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch booking")
	}

	cfg := getConfig(c)
	services.SendEmailAsync(cfg, services.BuildBookingRescheduledEmail(cfg, updated, oldStart))

	return c.JSON(http.StatusOK, updated)
}

// AdminGetBookingsHandler lists bookings for the operator, either by
// invitee email or by time range
func AdminGetBookingsHandler(c echo.Context) error {
	if email := c.QueryParam("invitee_email"); email != "" {
		bookings, err := services.GetInviteeBookings(db.DB, email)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookings")
		}
		return c.JSON(http.StatusOK, bookings)
	}

	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")
	if startStr == "" || endStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invitee_email or start and end are required")
	}
	start, err := services.ParseDate(startStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid start date")
	}
	end, err := services.ParseDate(endStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid end date")
	}

	bookings, err := services.GetBookingsBetween(db.DB, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookings")
	}
	return c.JSON(http.StatusOK, bookings)
}

// AdminUpdateBookingStatusHandler sets a booking's status, used to mark
// no-shows or confirm a pending booking
func AdminUpdateBookingStatusHandler(c echo.Context) error {
	id := c.Param("id")
	if _, err := services.GetBookingByID(db.DB, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}

	var req struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if !models.IsValidBookingStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid booking status")
	}

	if err := services.UpdateBookingStatus(db.DB, id, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update booking")
	}

	booking, err := services.GetBookingByID(db.DB, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch booking")
	}
	return c.JSON(http.StatusOK, booking)
}

// BookingICSHandler returns the ICS invite for a booking
func BookingICSHandler(c echo.Context) error {
	booking, err := services.GetBookingByToken(db.DB, c.Param("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}

	cfg := getConfig(c)
	ics, err := services.GenerateBookingICS(booking, cfg.OrganizerName, cfg.OrganizerEmail)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate invite")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="booking.ics"`)
	return c.Blob(http.StatusOK, "text/calendar", ics)
}
