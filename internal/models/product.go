package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Currencies accepted for product pricing.
const (
	CurrencyUSD = "USD"
	CurrencyCUP = "CUP"
	CurrencyEUR = "EUR"
	CurrencyMLC = "MLC"
)

// ValidCurrency reports whether code is one of the accepted currencies.
func ValidCurrency(code string) bool {
	switch code {
	case CurrencyUSD, CurrencyCUP, CurrencyEUR, CurrencyMLC:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	SKU           string    `gorm:"uniqueIndex" json:"sku"`
	Name          string    `json:"name"`
	CategoryID    uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category `json:"category,omitempty"`
	Price         float64   `json:"price"`
	Currency      string    `gorm:"default:USD" json:"currency"`
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	PrimaryImage  string    `json:"primary_image"`
	Description   string    `json:"description"`

	Colors          []Color          `gorm:"many2many:product_colors;" json:"colors,omitempty"`
	GalleryImages   []GalleryImage   `json:"gallery_images,omitempty"`
	AttributeValues []AttributeValue `json:"attribute_values,omitempty"`
}

// FormattedPrice renders the price with its currency, e.g. "1250.00 USD".
func (p Product) FormattedPrice() string {
	return fmt.Sprintf("%.2f %s", p.Price, p.Currency)
}

// InStock reports whether any units are available.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// GalleryImage is one entry of a product's ordered image gallery.
type GalleryImage struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Image        string    `json:"image"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `json:"display_order"`
}
