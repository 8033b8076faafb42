package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/motoluxe/internal/models"
)

func TestInferTypeTag(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Motos Eléctricas", models.TypeElectric},
		{"E-Bikes", models.TypeElectric},
		{"Bicimotos", models.TypeElectric},
		{"Motos de Combustión", models.TypeCombustion},
		{"Motos de Gasolina", models.TypeCombustion},
		{"Triciclo de Carga", models.TypeCargoTrike},
		{"Accesorios", models.TypeGeneral},
		{"", models.TypeGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, InferTypeTag(tc.name), "category %q", tc.name)
	}
}

// "Moto Eléctrica" contains keywords of two lists; the electric check runs
// first and wins.
func TestInferTypeTagPriority(t *testing.T) {
	assert.Equal(t, models.TypeElectric, InferTypeTag("Moto Eléctrica Urbana"))
	assert.Equal(t, models.TypeCombustion, InferTypeTag("Moto Clásica"))
}

func TestEffectiveTypeTag(t *testing.T) {
	assert.Equal(t, models.TypeGeneral, EffectiveTypeTag(nil))

	explicit := &models.Category{Name: "Motos Eléctricas", TypeTag: models.TypeCombustion}
	assert.Equal(t, models.TypeCombustion, EffectiveTypeTag(explicit))

	legacy := &models.Category{Name: "Motos Eléctricas"}
	assert.Equal(t, models.TypeElectric, EffectiveTypeTag(legacy))

	unknown := &models.Category{Name: "Triciclos", TypeTag: "bogus"}
	assert.Equal(t, models.TypeCargoTrike, EffectiveTypeTag(unknown))
}
