package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/models"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns the aggregate numbers shown on the admin landing
// page.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	var activeProducts int64
	if err := h.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&activeProducts).Error; err != nil {
		return err
	}

	var outOfStock int64
	if err := h.db.Model(&models.Product{}).
		Where("stock_quantity = 0").
		Count(&outOfStock).Error; err != nil {
		return err
	}

	var totalCategories int64
	if err := h.db.Model(&models.Category{}).Count(&totalCategories).Error; err != nil {
		return err
	}

	var totalDefinitions int64
	if err := h.db.Model(&models.AttributeDefinition{}).Count(&totalDefinitions).Error; err != nil {
		return err
	}

	var recent []models.Product
	if err := h.db.Preload("Category").
		Order("created_at desc").
		Limit(5).
		Find(&recent).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_products":        totalProducts,
			"active_products":       activeProducts,
			"out_of_stock":          outOfStock,
			"total_categories":      totalCategories,
			"attribute_definitions": totalDefinitions,
			"recent_products":       recent,
		},
	})
}
