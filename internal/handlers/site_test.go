package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/motoluxe/internal/catalog"
	"github.com/example/motoluxe/internal/config"
)

func TestSiteInfo(t *testing.T) {
	cfg := &config.Config{
		DefaultCurrency: "USD",
		Branding: config.Branding{
			SiteName:       "MotoLuxe",
			WhatsAppNumber: "5355513196",
			ContactMessage: "Hola, quiero más información",
		},
	}

	app := fiber.New()
	app.Get("/api/site-info", NewSiteHandler(cfg).Info)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/site-info", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			SiteName   string `json:"site_name"`
			ContactURL string `json:"contact_url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.True(t, body.Success)
	assert.Equal(t, "MotoLuxe", body.Data.SiteName)
	assert.Equal(t,
		"https://wa.me/5355513196?text=Hola%2C+quiero+m%C3%A1s+informaci%C3%B3n",
		body.Data.ContactURL)
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&catalog.ValidationError{Field: "name", Message: "is required"}, fiber.StatusUnprocessableEntity},
		{&catalog.NotFoundError{Entity: "product"}, fiber.StatusNotFound},
		{&catalog.ProtectedReferenceError{Entity: "category", Blockers: 3}, fiber.StatusConflict},
		{&catalog.DuplicateSKUError{SKU: "ELÉ-AAAA1111"}, fiber.StatusConflict},
		{&catalog.DuplicateValueError{}, fiber.StatusConflict},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/x", func(c *fiber.Ctx) error {
			return respondError(c, tc.err)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%T", tc.err)
	}
}
