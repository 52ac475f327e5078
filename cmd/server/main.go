package main

import (
	"log"
	"time"

	"meet_flow_app_go/config"
	"meet_flow_app_go/db"
	"meet_flow_app_go/handlers"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"
	"meet_flow_app_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.EventType{},
		&models.AvailabilityRule{},
		&models.DateOverride{},
		&models.OverrideRange{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default event types on a fresh install
	if err := services.EnsureDefaultEventTypes(db.DB); err != nil {
		log.Fatalf("Failed to seed default event types: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public booking routes
	e.GET("/api/event-types", handlers.GetEventTypesHandler)
	e.GET("/api/event-types/:slug", handlers.GetEventTypeHandler)
	e.GET("/api/event-types/:slug/days", handlers.GetEligibleDaysHandler)
	e.GET("/api/event-types/:slug/slots", handlers.GetSlotsHandler)
	e.POST("/api/event-types/:slug/bookings", handlers.SubmitBookingHandler)

	// Public booking management via token (reschedule/cancel links)
	e.GET("/api/bookings/token/:token", handlers.GetBookingByTokenHandler)
	e.GET("/api/bookings/token/:token/slots", handlers.GetRescheduleSlotsHandler)
	e.POST("/api/bookings/token/:token/cancel", handlers.CancelBookingHandler)
	e.POST("/api/bookings/token/:token/reschedule", handlers.RescheduleBookingHandler)
	e.GET("/api/bookings/token/:token/ics", handlers.BookingICSHandler)

	// Operator routes (event type and availability management)
	admin := e.Group("/api/admin")
	{
		admin.GET("/event-types", handlers.AdminGetEventTypesHandler)
		admin.POST("/event-types", handlers.CreateEventTypeHandler)
		admin.PUT("/event-types/:id", handlers.UpdateEventTypeHandler)
		admin.DELETE("/event-types/:id", handlers.DeleteEventTypeHandler)

		admin.GET("/event-types/:id/rules", handlers.GetAvailabilityRulesHandler)
		admin.POST("/event-types/:id/rules", handlers.CreateAvailabilityRuleHandler)
		admin.PUT("/event-types/:id/rules/:ruleId", handlers.UpdateAvailabilityRuleHandler)
		admin.DELETE("/event-types/:id/rules/:ruleId", handlers.DeleteAvailabilityRuleHandler)

		admin.GET("/event-types/:id/overrides", handlers.GetDateOverridesHandler)
		admin.POST("/event-types/:id/overrides", handlers.CreateDateOverrideHandler)
		admin.DELETE("/event-types/:id/overrides/:overrideId", handlers.DeleteDateOverrideHandler)

		admin.GET("/bookings", handlers.AdminGetBookingsHandler)
		admin.PUT("/bookings/:id/status", handlers.AdminUpdateBookingStatusHandler)

		admin.GET("/calendar/events", handlers.CalendarEventsHandler)
	}

	// Start background maintenance job (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			// Mark elapsed bookings as completed
			if err := services.CompletePastBookings(db.DB, time.Now().UTC()); err != nil {
				log.Printf("Error completing past bookings: %v", err)
			}
			// Send day-before reminder emails
			jobs.SendBookingReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
