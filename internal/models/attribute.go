package models

import "github.com/google/uuid"

// Product-type tags scoping which attribute definitions apply to a product.
const (
	TypeGeneral    = "general"
	TypeElectric   = "electric"
	TypeCombustion = "combustion"
	TypeCargoTrike = "cargo-trike"
)

// TypeTagDisplay maps a type tag to its human-readable label.
func TypeTagDisplay(tag string) string {
	switch tag {
	case TypeElectric:
		return "Motos Eléctricas"
	case TypeCombustion:
		return "Motos de Combustión"
	case TypeCargoTrike:
		return "Triciclos de Carga"
	default:
		return "General"
	}
}

// ValidTypeTag reports whether tag is one of the known type tags.
func ValidTypeTag(tag string) bool {
	switch tag {
	case TypeGeneral, TypeElectric, TypeCombustion, TypeCargoTrike:
		return true
	}
	return false
}

// AttributeDefinition is a named specification slot (e.g. "Voltaje de
// Batería") scoped to one product-type tag. The same name may exist under
// different tags, never twice under the same one.
type AttributeDefinition struct {
	BaseModel
	Name         string `gorm:"uniqueIndex:idx_attribute_name_type" json:"name"`
	TypeTag      string `gorm:"uniqueIndex:idx_attribute_name_type;default:general" json:"type_tag"`
	Unit         string `json:"unit"`
	DisplayOrder int    `json:"display_order"`

	Values []AttributeValue `gorm:"foreignKey:AttributeID" json:"values,omitempty"`
}

// AttributeValue assigns one definition a concrete value for one product.
// A product holds at most one value per definition.
type AttributeValue struct {
	BaseModel
	ProductID   uuid.UUID            `gorm:"type:uuid;uniqueIndex:idx_value_product_attribute" json:"product_id"`
	AttributeID uuid.UUID            `gorm:"type:uuid;uniqueIndex:idx_value_product_attribute" json:"attribute_id"`
	Attribute   *AttributeDefinition `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`
	Value       string               `json:"value"`
}

// Formatted returns the value with the definition's unit appended when the
// definition is loaded and carries one.
func (v AttributeValue) Formatted() string {
	if v.Attribute != nil && v.Attribute.Unit != "" {
		return v.Value + " " + v.Attribute.Unit
	}
	return v.Value
}
