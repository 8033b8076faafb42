package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/motoluxe/internal/catalog"
)

// respondError maps the catalog's typed errors onto HTTP responses. Anything
// unrecognized bubbles up as a 500 through fiber's error handler.
func respondError(c *fiber.Ctx, err error) error {
	var validation *catalog.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"error":   validation.Message,
			"field":   validation.Field,
		})
	}

	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   notFound.Error(),
		})
	}

	var protected *catalog.ProtectedReferenceError
	if errors.As(err, &protected) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":  false,
			"error":    protected.Error(),
			"blockers": protected.Blockers,
		})
	}

	var dupDef *catalog.DuplicateDefinitionError
	var dupVal *catalog.DuplicateValueError
	var dupSKU *catalog.DuplicateSKUError
	if errors.As(err, &dupDef) || errors.As(err, &dupVal) || errors.As(err, &dupSKU) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return err
}
