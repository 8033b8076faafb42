package catalog

import (
	"strings"

	"github.com/example/motoluxe/internal/models"
)

// Keyword lists for inferring a product-type tag from a category name.
// Checked in order; the first list with a hit wins, so "Moto Eléctrica"
// resolves to electric even though it also contains "moto".
var (
	electricKeywords   = []string{"electrica", "eléctrica", "e-bike", "ebike", "bicimoto", "bici"}
	combustionKeywords = []string{"combustion", "combustión", "moto", "gasolina"}
	cargoTrikeKeywords = []string{"triciclo", "trike"}
)

// InferTypeTag resolves a category display name to a product-type tag using
// case-insensitive substring matching. Names matching nothing fall back to
// general, so categories like "Accesorios" still get the shared attributes.
func InferTypeTag(categoryName string) string {
	name := strings.ToLower(categoryName)

	for _, kw := range electricKeywords {
		if strings.Contains(name, kw) {
			return models.TypeElectric
		}
	}
	for _, kw := range combustionKeywords {
		if strings.Contains(name, kw) {
			return models.TypeCombustion
		}
	}
	for _, kw := range cargoTrikeKeywords {
		if strings.Contains(name, kw) {
			return models.TypeCargoTrike
		}
	}

	return models.TypeGeneral
}

// EffectiveTypeTag returns the category's explicit tag when set and falls
// back to name inference for categories migrated from the legacy scheme.
func EffectiveTypeTag(category *models.Category) string {
	if category == nil {
		return models.TypeGeneral
	}
	if models.ValidTypeTag(category.TypeTag) {
		return category.TypeTag
	}
	return InferTypeTag(category.Name)
}
