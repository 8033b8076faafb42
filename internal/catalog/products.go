package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/models"
)

// ProductService manages product records and their dependent rows.
type ProductService struct {
	db     *gorm.DB
	values *ValueStore
}

// NewProductService constructs ProductService.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db, values: NewValueStore(db)}
}

// ProductSpec is the write payload for a product. Attribute values and
// gallery entries ride along so a create lands in a single transaction.
type ProductSpec struct {
	SKU           string
	Name          string
	CategoryID    uuid.UUID
	Price         float64
	Currency      string
	StockQuantity int
	IsActive      *bool
	PrimaryImage  string
	Description   string

	ColorIDs        []uuid.UUID
	AttributeValues map[uuid.UUID]string
	Gallery         []GallerySpec
}

// GallerySpec is one gallery entry of a ProductSpec.
type GallerySpec struct {
	Image        string
	Caption      string
	DisplayOrder int
}

func (s *ProductSpec) validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if s.CategoryID == uuid.Nil {
		return &ValidationError{Field: "category_id", Message: "is required"}
	}
	if s.Price <= 0 {
		return &ValidationError{Field: "price", Message: "must be greater than zero"}
	}
	if s.Currency == "" {
		s.Currency = models.CurrencyUSD
	}
	if !models.ValidCurrency(s.Currency) {
		return &ValidationError{Field: "currency", Message: "unknown currency"}
	}
	if s.StockQuantity < 0 {
		return &ValidationError{Field: "stock_quantity", Message: "must not be negative"}
	}
	return nil
}

// GenerateSKU builds a SKU from the category name: its first three runes
// uppercased, a dash, and eight uppercase hex characters. Accented prefixes
// ("ELÉ") are kept as-is.
func GenerateSKU(categoryName string) string {
	prefix := "PRD"
	if runes := []rune(strings.TrimSpace(categoryName)); len(runes) >= 3 {
		prefix = strings.ToUpper(string(runes[:3]))
	} else if len(runes) > 0 {
		prefix = strings.ToUpper(string(runes))
	}

	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + "-" + code
}

// Create validates the spec and persists the product together with its color
// links, gallery entries and attribute values in one transaction.
func (p *ProductService) Create(spec ProductSpec) (*models.Product, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		SKU:           strings.TrimSpace(spec.SKU),
		Name:          spec.Name,
		CategoryID:    spec.CategoryID,
		Price:         spec.Price,
		Currency:      spec.Currency,
		StockQuantity: spec.StockQuantity,
		IsActive:      true,
		PrimaryImage:  spec.PrimaryImage,
		Description:   spec.Description,
	}
	if spec.IsActive != nil {
		product.IsActive = *spec.IsActive
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", spec.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "category", ID: spec.CategoryID.String()}
			}
			return err
		}

		if product.SKU == "" {
			product.SKU = GenerateSKU(category.Name)
		}

		var count int64
		if err := tx.Model(&models.Product{}).
			Where("sku = ?", product.SKU).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &DuplicateSKUError{SKU: product.SKU}
		}

		// Select forces zero-valued fields into the insert; without it
		// IsActive=false is omitted and the column default flips it to true.
		if err := tx.Select("*").Create(product).Error; err != nil {
			return err
		}

		if err := attachColors(tx, product, spec.ColorIDs); err != nil {
			return err
		}

		for _, g := range spec.Gallery {
			row := models.GalleryImage{
				ProductID:    product.ID,
				Image:        g.Image,
				Caption:      g.Caption,
				DisplayOrder: g.DisplayOrder,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if len(spec.AttributeValues) > 0 {
			if err := p.values.replaceAll(tx, product.ID, spec.AttributeValues); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.Get(product.ID)
}

// Update applies the spec to an existing product. The SKU is generated once
// at first save and never changes, so an incoming SKU is ignored. Attribute
// values are replaced wholesale; color links likewise.
func (p *ProductService) Update(id uuid.UUID, spec ProductSpec) (*models.Product, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "product", ID: id.String()}
			}
			return err
		}

		if spec.CategoryID != existing.CategoryID {
			var count int64
			if err := tx.Model(&models.Category{}).
				Where("id = ?", spec.CategoryID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &NotFoundError{Entity: "category", ID: spec.CategoryID.String()}
			}
		}

		existing.Name = spec.Name
		existing.CategoryID = spec.CategoryID
		existing.Price = spec.Price
		existing.Currency = spec.Currency
		existing.StockQuantity = spec.StockQuantity
		existing.Description = spec.Description
		if spec.PrimaryImage != "" {
			existing.PrimaryImage = spec.PrimaryImage
		}
		if spec.IsActive != nil {
			existing.IsActive = *spec.IsActive
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		if spec.ColorIDs != nil {
			if err := tx.Model(&existing).Association("Colors").Clear(); err != nil {
				return err
			}
			if err := attachColors(tx, &existing, spec.ColorIDs); err != nil {
				return err
			}
		}

		if spec.AttributeValues != nil {
			if err := p.values.replaceAll(tx, existing.ID, spec.AttributeValues); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.Get(id)
}

// SetActive flips the product's active flag without touching anything else.
func (p *ProductService) SetActive(id uuid.UUID, active bool) error {
	result := p.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "product", ID: id.String()}
	}
	return nil
}

// Get loads a product with its category, colors, ordered gallery and
// attribute values.
func (p *ProductService) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := p.db.Preload("Category").
		Preload("Colors", func(db *gorm.DB) *gorm.DB {
			return db.Order("colors.display_order")
		}).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB {
			return db.Order("gallery_images.display_order")
		}).
		Preload("AttributeValues.Attribute").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: id.String()}
		}
		return nil, err
	}
	return &product, nil
}

// Delete removes the product and cascades to its attribute values, gallery
// entries and color links in one transaction.
func (p *ProductService) Delete(id uuid.UUID) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "product", ID: id.String()}
			}
			return err
		}

		if err := tx.Where("product_id = ?", id).
			Delete(&models.AttributeValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).
			Delete(&models.GalleryImage{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Colors").Clear(); err != nil {
			return err
		}

		return tx.Delete(&product).Error
	})
}

// Related returns up to limit other active products from the same category,
// newest first.
func (p *ProductService) Related(product *models.Product, limit int) ([]models.Product, error) {
	var related []models.Product
	err := p.db.Preload("Category").
		Where("category_id = ? AND is_active = ? AND id <> ?", product.CategoryID, true, product.ID).
		Order("created_at desc").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	return related, nil
}

func attachColors(tx *gorm.DB, product *models.Product, colorIDs []uuid.UUID) error {
	if len(colorIDs) == 0 {
		return nil
	}

	var colors []models.Color
	if err := tx.Where("id IN ?", colorIDs).Find(&colors).Error; err != nil {
		return err
	}
	if len(colors) != len(colorIDs) {
		return &NotFoundError{Entity: "color", ID: "one or more requested ids"}
	}

	return tx.Model(product).Association("Colors").Append(colors)
}
