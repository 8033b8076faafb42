package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/motoluxe/internal/database"
	"github.com/example/motoluxe/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func sendJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func newColorApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	handler := NewCatalogHandler(db)

	app := fiber.New()
	app.Post("/colors", handler.CreateColor)
	app.Put("/colors/:id", handler.UpdateColor)
	return app, db
}

func TestCreateColorHonorsActiveFlag(t *testing.T) {
	app, db := newColorApp(t)

	resp := sendJSON(t, app, "POST", "/colors", fiber.Map{
		"name":      "Negro Mate",
		"hex_code":  "#1F2937",
		"is_active": false,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The flag must survive the insert, where the column default would
	// otherwise flip it back to true.
	var color models.Color
	require.NoError(t, db.Where("name = ?", "Negro Mate").First(&color).Error)
	assert.False(t, color.IsActive)
}

func TestCreateColorDefaultsToActive(t *testing.T) {
	app, db := newColorApp(t)

	resp := sendJSON(t, app, "POST", "/colors", fiber.Map{
		"name":     "Rojo",
		"hex_code": "#DC2626",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var color models.Color
	require.NoError(t, db.Where("name = ?", "Rojo").First(&color).Error)
	assert.True(t, color.IsActive)
}

func TestUpdateColorKeepsActiveWhenOmitted(t *testing.T) {
	app, db := newColorApp(t)

	color := models.Color{Name: "Azul", HexCode: "#2563EB", IsActive: true}
	require.NoError(t, db.Create(&color).Error)

	resp := sendJSON(t, app, "PUT", "/colors/"+color.ID.String(), fiber.Map{
		"name":     "Azul Marino",
		"hex_code": "#1E3A8A",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Color
	require.NoError(t, db.First(&updated, "id = ?", color.ID).Error)
	assert.Equal(t, "Azul Marino", updated.Name)
	assert.True(t, updated.IsActive)

	resp = sendJSON(t, app, "PUT", "/colors/"+color.ID.String(), fiber.Map{
		"name":      "Azul Marino",
		"hex_code":  "#1E3A8A",
		"is_active": false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&updated, "id = ?", color.ID).Error)
	assert.False(t, updated.IsActive)
}
