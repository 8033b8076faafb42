package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/example/motoluxe/internal/config"
)

// SiteHandler exposes the branding and contact values the presentation layer
// renders. They come from configuration, never from the database.
type SiteHandler struct {
	cfg *config.Config
}

// NewSiteHandler constructs SiteHandler.
func NewSiteHandler(cfg *config.Config) *SiteHandler {
	return &SiteHandler{cfg: cfg}
}

// Info returns the site branding plus a ready-made WhatsApp contact link.
func (h *SiteHandler) Info(c *fiber.Ctx) error {
	b := h.cfg.Branding
	contact := "https://wa.me/" + b.WhatsAppNumber +
		"?text=" + url.QueryEscape(b.ContactMessage)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"site_name":        b.SiteName,
			"admin_title":      b.AdminTitle,
			"admin_subtitle":   b.AdminSubtitle,
			"whatsapp_number":  b.WhatsAppNumber,
			"contact_url":      contact,
			"default_currency": h.cfg.DefaultCurrency,
		},
	})
}
