package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/catalog"
	"github.com/example/motoluxe/internal/models"
)

// AttributeHandler manages attribute definitions and single-value writes.
type AttributeHandler struct {
	registry *catalog.AttributeRegistry
	values   *catalog.ValueStore
}

// NewAttributeHandler constructs AttributeHandler.
func NewAttributeHandler(db *gorm.DB) *AttributeHandler {
	return &AttributeHandler{
		registry: catalog.NewAttributeRegistry(db),
		values:   catalog.NewValueStore(db),
	}
}

type definitionRequest struct {
	Name         string `json:"name"`
	TypeTag      string `json:"type_tag"`
	Unit         string `json:"unit"`
	DisplayOrder int    `json:"display_order"`
}

func (r definitionRequest) toSpec() catalog.DefinitionSpec {
	return catalog.DefinitionSpec{
		Name:         r.Name,
		TypeTag:      r.TypeTag,
		Unit:         r.Unit,
		DisplayOrder: r.DisplayOrder,
	}
}

// definitionResponse is the JSON contract of the attribute endpoints.
type definitionResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Unit           string    `json:"unit"`
	TypeTag        string    `json:"type_tag"`
	TypeTagDisplay string    `json:"type_tag_display"`
	DisplayOrder   int       `json:"display_order"`
}

func toDefinitionResponse(def models.AttributeDefinition) definitionResponse {
	return definitionResponse{
		ID:             def.ID,
		Name:           def.Name,
		Unit:           def.Unit,
		TypeTag:        def.TypeTag,
		TypeTagDisplay: models.TypeTagDisplay(def.TypeTag),
		DisplayOrder:   def.DisplayOrder,
	}
}

func toDefinitionResponses(defs []models.AttributeDefinition) []definitionResponse {
	out := make([]definitionResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, toDefinitionResponse(def))
	}
	return out
}

// ListDefinitions returns definitions, optionally filtered by ?type_tag=.
func (h *AttributeHandler) ListDefinitions(c *fiber.Ctx) error {
	defs, err := h.registry.List(c.Query("type_tag"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": toDefinitionResponses(defs)})
}

// ResolveApplicable returns the definitions applicable to a category: the
// general set plus the set for the category's resolved type tag, in display
// order. The admin product form uses this to build its attribute inputs.
func (h *AttributeHandler) ResolveApplicable(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Query("category_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category_id")
	}

	defs, tag, err := h.registry.ResolveForCategory(categoryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"type_tag": tag,
		"data":     toDefinitionResponses(defs),
	})
}

// CreateDefinition registers a new attribute definition.
func (h *AttributeHandler) CreateDefinition(c *fiber.Ctx) error {
	var req definitionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	def, err := h.registry.Define(req.toSpec())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": toDefinitionResponse(*def)})
}

// UpdateDefinition modifies an existing definition.
func (h *AttributeHandler) UpdateDefinition(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req definitionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	def, err := h.registry.Update(id, req.toSpec())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": toDefinitionResponse(*def)})
}

// DeleteDefinition removes a definition unless attribute values still
// reference it.
func (h *AttributeHandler) DeleteDefinition(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.registry.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type valueRequest struct {
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

// AddProductValue inserts one attribute value for a product; a populated
// pair is rejected with a 409.
func (h *AttributeHandler) AddProductValue(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	attributeID, err := uuid.Parse(req.AttributeID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attribute_id")
	}

	row, err := h.values.AddValue(productID, attributeID, req.Value)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": row})
}

// SetProductValue upserts one attribute value for a product.
func (h *AttributeHandler) SetProductValue(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	attributeID, err := uuid.Parse(req.AttributeID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attribute_id")
	}

	row, err := h.values.SetValue(productID, attributeID, req.Value)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": row})
}
