package handlers

import (
	"net/http"
	"time"

	"meet_flow_app_go/db"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetAvailabilityRulesHandler returns all weekly rules for an event type
func GetAvailabilityRulesHandler(c echo.Context) error {
	eventTypeID := c.Param("id")
	if _, err := services.GetEventTypeByID(db.DB, eventTypeID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	rules, err := services.GetAvailabilityRules(db.DB, eventTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch rules")
	}
	return c.JSON(http.StatusOK, rules)
}

// CreateAvailabilityRuleHandler adds a weekly rule to an event type
func CreateAvailabilityRuleHandler(c echo.Context) error {
	eventTypeID := c.Param("id")
	if _, err := services.GetEventTypeByID(db.DB, eventTypeID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	var req struct {
		DayOfWeek int    `json:"day_of_week" form:"day_of_week"`
		StartTime string `json:"start_time" form:"start_time"` // "09:00"
		EndTime   string `json:"end_time" form:"end_time"`     // "17:00"
		Kind      string `json:"kind" form:"kind"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Kind == "" {
		req.Kind = models.RuleKindOpen
	}

	// Overlapping blackouts are tolerated by the engine but usually an
	// authoring mistake; reject them here
	if req.Kind == models.RuleKindBlackout {
		overlap, err := services.CheckRuleOverlap(db.DB, eventTypeID, req.DayOfWeek, req.StartTime, req.EndTime, req.Kind, "")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check overlap")
		}
		if overlap {
			return echo.NewHTTPError(http.StatusConflict, "Rule overlaps an existing blackout window")
		}
	}

	rule := &models.AvailabilityRule{
		EventTypeID: eventTypeID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Kind:        req.Kind,
	}
	if err := services.CreateAvailabilityRule(db.DB, rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rule)
}

// UpdateAvailabilityRuleHandler updates a weekly rule
func UpdateAvailabilityRuleHandler(c echo.Context) error {
	rule, err := services.GetAvailabilityRuleByID(db.DB, c.Param("ruleId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Rule not found")
	}

	var req struct {
		StartTime string `json:"start_time" form:"start_time"`
		EndTime   string `json:"end_time" form:"end_time"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.StartTime != "" {
		rule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		rule.EndTime = req.EndTime
	}

	if err := services.UpdateAvailabilityRule(db.DB, rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteAvailabilityRuleHandler removes a weekly rule
func DeleteAvailabilityRuleHandler(c echo.Context) error {
	if _, err := services.GetAvailabilityRuleByID(db.DB, c.Param("ruleId")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Rule not found")
	}
	if err := services.DeleteAvailabilityRule(db.DB, c.Param("ruleId")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete rule")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDateOverridesHandler returns upcoming overrides for an event type
func GetDateOverridesHandler(c echo.Context) error {
	eventTypeID := c.Param("id")
	if _, err := services.GetEventTypeByID(db.DB, eventTypeID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	overrides, err := services.GetAllDateOverrides(db.DB, eventTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch overrides")
	}
	return c.JSON(http.StatusOK, overrides)
}

// CreateDateOverrideHandler adds a one-off exception date
func CreateDateOverrideHandler(c echo.Context) error {
	eventTypeID := c.Param("id")
	if _, err := services.GetEventTypeByID(db.DB, eventTypeID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event type not found")
	}

	var req struct {
		Date   string `json:"date" form:"date"` // YYYY-MM-DD
		Reason string `json:"reason" form:"reason"`
		Ranges []struct {
			StartTime string `json:"start_time"`
			EndTime   string `json:"end_time"`
		} `json:"ranges"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	date, err := services.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	override := &models.DateOverride{
		EventTypeID: eventTypeID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Reason:      req.Reason,
	}
	for _, r := range req.Ranges {
		override.Ranges = append(override.Ranges, models.OverrideRange{
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}

	if err := services.CreateDateOverride(db.DB, override); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, override)
}

// DeleteDateOverrideHandler removes an override
func DeleteDateOverrideHandler(c echo.Context) error {
	if _, err := services.GetDateOverrideByID(db.DB, c.Param("overrideId")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Override not found")
	}
	if err := services.DeleteDateOverride(db.DB, c.Param("overrideId")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete override")
	}
	return c.NoContent(http.StatusNoContent)
}
