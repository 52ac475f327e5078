package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"meet_flow_app_go/config"
	"meet_flow_app_go/db"
	"meet_flow_app_go/models"
	"meet_flow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.EventType{},
		&models.AvailabilityRule{},
		&models.DateOverride{},
		&models.OverrideRange{},
		&models.Booking{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		AppURL:        "http://localhost:8080",
		EmailTestMode: true,
	})

	return e, c, rec
}

// seedOpenEventType creates an active event type open Mondays 09:00-17:00
func seedOpenEventType(t *testing.T, testDB *gorm.DB, slug string, durationMinutes int) *models.EventType {
	eventType := &models.EventType{
		Name:            "Test " + slug,
		Slug:            slug,
		DurationMinutes: durationMinutes,
		IsActive:        true,
		Rules: []models.AvailabilityRule{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Kind: models.RuleKindOpen},
		},
	}
	err := services.CreateEventType(testDB, eventType)
	assert.NoError(t, err)
	return eventType
}

// httpErrorCode extracts the status code from an echo handler error
func httpErrorCode(t *testing.T, err error) int {
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}
