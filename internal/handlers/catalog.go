package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/catalog"
	"github.com/example/motoluxe/internal/models"
)

// CatalogHandler manages categories and colors.
type CatalogHandler struct {
	db         *gorm.DB
	categories *catalog.CategoryService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db, categories: catalog.NewCategoryService(db)}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
	TypeTag     string `json:"type_tag"`
}

func (r categoryRequest) toSpec() (catalog.CategorySpec, error) {
	spec := catalog.CategorySpec{
		Name:        r.Name,
		Description: r.Description,
		TypeTag:     r.TypeTag,
	}
	if r.ParentID != "" {
		id, err := uuid.Parse(r.ParentID)
		if err != nil {
			return spec, fiber.NewError(fiber.StatusBadRequest, "invalid parent_id")
		}
		spec.ParentID = &id
	}
	return spec, nil
}

// ListCategories returns all categories with the resolved type tag of each.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List()
	if err != nil {
		return err
	}

	type categoryItem struct {
		models.Category
		EffectiveTypeTag string `json:"effective_type_tag"`
	}

	items := make([]categoryItem, 0, len(categories))
	for _, cat := range categories {
		items = append(items, categoryItem{
			Category:         cat,
			EffectiveTypeTag: catalog.EffectiveTypeTag(&cat),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// GetCategory returns a single category with its children.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	category, err := h.categories.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// CreateCategory persists a new category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	spec, err := req.toSpec()
	if err != nil {
		return err
	}

	category, err := h.categories.Create(spec)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": category})
}

// UpdateCategory updates an existing category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	spec, err := req.toSpec()
	if err != nil {
		return err
	}

	category, err := h.categories.Update(id, spec)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory removes a category and its subtree. Products anywhere in
// the subtree block the delete with a 409 carrying the blocker count.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.categories.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListColors returns colors in display order. Public callers get active
// colors only; ?all=true includes inactive ones for the admin panel.
func (h *CatalogHandler) ListColors(c *fiber.Ctx) error {
	query := h.db.Model(&models.Color{})
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var colors []models.Color
	if err := query.Order("display_order, name").Find(&colors).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": colors})
}

type colorRequest struct {
	Name         string `json:"name"`
	HexCode      string `json:"hex_code"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// CreateColor persists a new color. New colors are active unless the payload
// says otherwise.
func (h *CatalogHandler) CreateColor(c *fiber.Ctx) error {
	var req colorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	color := models.Color{
		Name:         req.Name,
		HexCode:      req.HexCode,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		color.IsActive = *req.IsActive
	}

	// Select forces zero-valued fields into the insert; without it
	// IsActive=false is omitted and the column default flips it to true.
	if err := h.db.Select("*").Create(&color).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": color})
}

// UpdateColor updates an existing color.
func (h *CatalogHandler) UpdateColor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var color models.Color
	if err := h.db.First(&color, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "color not found")
		}
		return err
	}

	var req colorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	color.Name = req.Name
	color.HexCode = req.HexCode
	color.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		color.IsActive = *req.IsActive
	}
	if err := h.db.Save(&color).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": color})
}

// DeleteColor removes a color and its product links.
func (h *CatalogHandler) DeleteColor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		color := models.Color{BaseModel: models.BaseModel{ID: id}}
		if err := tx.Model(&color).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Color{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
