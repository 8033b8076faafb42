package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/models"
)

// ValueStore manages the attribute values assigned to products.
type ValueStore struct {
	db *gorm.DB
}

// NewValueStore constructs ValueStore.
func NewValueStore(db *gorm.DB) *ValueStore {
	return &ValueStore{db: db}
}

// AddValue inserts a value for a (product, attribute) pair that must not be
// populated yet. This is the admin inline "add one row" path.
func (s *ValueStore) AddValue(productID, attributeID uuid.UUID, value string) (*models.AttributeValue, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, &ValidationError{Field: "value", Message: "is required"}
	}

	row := &models.AttributeValue{ProductID: productID, AttributeID: attributeID, Value: value}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureAttributeExists(tx, attributeID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.AttributeValue{}).
			Where("product_id = ? AND attribute_id = ?", productID, attributeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &DuplicateValueError{ProductID: productID.String(), AttributeID: attributeID.String()}
		}

		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}

	return row, nil
}

// SetValue upserts the value for a (product, attribute) pair: an existing
// row is overwritten, otherwise one is inserted.
func (s *ValueStore) SetValue(productID, attributeID uuid.UUID, value string) (*models.AttributeValue, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, &ValidationError{Field: "value", Message: "is required"}
	}

	var row models.AttributeValue
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureAttributeExists(tx, attributeID); err != nil {
			return err
		}

		err := tx.Where("product_id = ? AND attribute_id = ?", productID, attributeID).
			First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.AttributeValue{ProductID: productID, AttributeID: attributeID, Value: value}
			return tx.Create(&row).Error
		case err != nil:
			return err
		default:
			row.Value = value
			return tx.Save(&row).Error
		}
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// ReplaceAll is the whole-record write used by the admin edit flow: every
// existing value for the product is deleted, then one row is inserted per
// non-empty submitted value. Whitespace-only values are dropped, not stored
// as empty strings. The whole exchange is one transaction, so a failure
// leaves the previous values intact.
func (s *ValueStore) ReplaceAll(productID uuid.UUID, values map[uuid.UUID]string) error {
	return s.replaceAll(s.db, productID, values)
}

func (s *ValueStore) replaceAll(db *gorm.DB, productID uuid.UUID, values map[uuid.UUID]string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).
			Delete(&models.AttributeValue{}).Error; err != nil {
			return err
		}

		for attributeID, value := range values {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}

			if err := ensureAttributeExists(tx, attributeID); err != nil {
				return err
			}

			row := models.AttributeValue{ProductID: productID, AttributeID: attributeID, Value: value}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Clear removes every value the product holds.
func (s *ValueStore) Clear(productID uuid.UUID) error {
	return s.db.Where("product_id = ?", productID).
		Delete(&models.AttributeValue{}).Error
}

// ListForProduct returns the product's values with their definitions, in
// definition display order.
func (s *ValueStore) ListForProduct(productID uuid.UUID) ([]models.AttributeValue, error) {
	var rows []models.AttributeValue
	err := s.db.Preload("Attribute").
		Joins("JOIN attribute_definitions ON attribute_definitions.id = attribute_values.attribute_id").
		Where("attribute_values.product_id = ?", productID).
		Order("attribute_definitions.display_order, attribute_definitions.name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func ensureAttributeExists(tx *gorm.DB, attributeID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.AttributeDefinition{}).
		Where("id = ?", attributeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Entity: "attribute definition", ID: attributeID.String()}
	}
	return nil
}
