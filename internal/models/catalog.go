package models

import "github.com/google/uuid"

// Category is a node in the product taxonomy. Subcategories reference their
// parent; deleting a parent removes its subtree, while products keep the
// category protected (see catalog.CategoryService).
type Category struct {
	BaseModel
	Name        string     `gorm:"uniqueIndex" json:"name"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Parent      *Category  `json:"parent,omitempty"`
	Children    []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	// TypeTag is the explicit product-type tag. Empty means the tag is
	// inferred from the category name (legacy data).
	TypeTag string `json:"type_tag"`

	Products []Product `json:"products,omitempty"`
}

// Color is a selectable product color.
type Color struct {
	BaseModel
	Name         string    `gorm:"uniqueIndex" json:"name"`
	HexCode      string    `json:"hex_code"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	Products     []Product `gorm:"many2many:product_colors;" json:"products,omitempty"`
}
