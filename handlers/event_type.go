package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"meet_flow_app_go/db"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// parsePositiveInt parses a positive integer with an upper bound
func parsePositiveInt(value string, max int) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 || parsed > max {
		return 0, fmt.Errorf("value out of range: %d", parsed)
	}
	return parsed, nil
}

// GetEventTypesHandler returns active event types for the booking page (JSON)
func GetEventTypesHandler(c echo.Context) error {
	types, err := services.GetActiveEventTypes(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event types")
	}
	return c.JSON(http.StatusOK, types)
}

// GetEventTypeHandler returns one event type by slug (JSON)
func GetEventTypeHandler(c echo.Context) error {
	eventType, err := services.GetEventTypeBySlug(db.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event type")
	}
	return c.JSON(http.StatusOK, eventType)
}

// AdminGetEventTypesHandler returns all event types, including inactive ones
func AdminGetEventTypesHandler(c echo.Context) error {
	types, err := services.GetEventTypes(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event types")
	}
	return c.JSON(http.StatusOK, types)
}

// CreateEventTypeHandler creates a new event type
func CreateEventTypeHandler(c echo.Context) error {
	var req struct {
		Name                   string `json:"name" form:"name"`
		Slug                   string `json:"slug" form:"slug"`
		Description            string `json:"description" form:"description"`
		DurationMinutes        int    `json:"duration_minutes" form:"duration_minutes"`
		BufferBeforeMinutes    int    `json:"buffer_before_minutes" form:"buffer_before_minutes"`
		BufferAfterMinutes     int    `json:"buffer_after_minutes" form:"buffer_after_minutes"`
		MinimumNoticeMinutes   int    `json:"minimum_notice_minutes" form:"minimum_notice_minutes"`
		BookingHorizonDays     *int   `json:"booking_horizon_days" form:"booking_horizon_days"`
		SlotGranularityMinutes int    `json:"slot_granularity_minutes" form:"slot_granularity_minutes"`
		Color                  string `json:"color" form:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and slug are required")
	}

	eventType := &models.EventType{
		Name:                   req.Name,
		Slug:                   req.Slug,
		Description:            req.Description,
		DurationMinutes:        req.DurationMinutes,
		BufferBeforeMinutes:    req.BufferBeforeMinutes,
		BufferAfterMinutes:     req.BufferAfterMinutes,
		MinimumNoticeMinutes:   req.MinimumNoticeMinutes,
		BookingHorizonDays:     req.BookingHorizonDays,
		SlotGranularityMinutes: req.SlotGranularityMinutes,
		Color:                  req.Color,
		IsActive:               true,
	}

	if err := services.CreateEventType(db.DB, eventType); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, eventType)
}

// UpdateEventTypeHandler updates an event type
func UpdateEventTypeHandler(c echo.Context) error {
	id := c.Param("id")
	if _, err := services.GetEventTypeByID(db.DB, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	var req map[string]interface{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	// Only allow known columns through
	allowed := map[string]bool{
		"name": true, "description": true, "duration_minutes": true,
		"buffer_before_minutes": true, "buffer_after_minutes": true,
		"minimum_notice_minutes": true, "booking_horizon_days": true,
		"slot_granularity_minutes": true, "color": true, "is_active": true,
		"order": true,
	}
	updates := map[string]interface{}{}
	for key, value := range req {
		if allowed[key] {
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No valid fields to update")
	}

	if err := services.UpdateEventType(db.DB, id, updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	eventType, err := services.GetEventTypeByID(db.DB, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event type")
	}
	return c.JSON(http.StatusOK, eventType)
}

// DeleteEventTypeHandler soft deletes an event type
func DeleteEventTypeHandler(c echo.Context) error {
	id := c.Param("id")
	if _, err := services.GetEventTypeByID(db.DB, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}
	if err := services.DeleteEventType(db.DB, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete event type")
	}
	return c.NoContent(http.StatusNoContent)
}
