package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/models"
)

// CategoryService manages the category taxonomy.
//
// Deletion policy: a category delete cascades to its descendant categories,
// but any product in the subtree protects the whole delete. The error carries
// the number of blocking products.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService constructs CategoryService.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategorySpec is the write payload for a category.
type CategorySpec struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
	TypeTag     string
}

func (s *CategorySpec) validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if s.TypeTag != "" && !models.ValidTypeTag(s.TypeTag) {
		return &ValidationError{Field: "type_tag", Message: "unknown type tag"}
	}
	return nil
}

// Create persists a new category.
func (c *CategoryService) Create(spec CategorySpec) (*models.Category, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        spec.Name,
		Description: spec.Description,
		ParentID:    spec.ParentID,
		TypeTag:     spec.TypeTag,
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("name = ?", spec.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "name", Message: "is already taken"}
		}

		if spec.ParentID != nil {
			if err := tx.First(&models.Category{}, "id = ?", *spec.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "category", ID: spec.ParentID.String()}
				}
				return err
			}
		}

		return tx.Create(category).Error
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Update modifies an existing category.
func (c *CategoryService) Update(id uuid.UUID, spec CategorySpec) (*models.Category, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	var category models.Category
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "category", ID: id.String()}
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Category{}).
			Where("name = ? AND id <> ?", spec.Name, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "name", Message: "is already taken"}
		}

		if spec.ParentID != nil {
			if err := tx.First(&models.Category{}, "id = ?", *spec.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "category", ID: spec.ParentID.String()}
				}
				return err
			}
		}

		category.Name = spec.Name
		category.Description = spec.Description
		category.ParentID = spec.ParentID
		category.TypeTag = spec.TypeTag
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// Get loads one category with its children.
func (c *CategoryService) Get(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := c.db.Preload("Children").First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", ID: id.String()}
		}
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name.
func (c *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := c.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes the category and its descendant categories. Products
// anywhere in the subtree block the delete.
func (c *CategoryService) Delete(id uuid.UUID) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "category", ID: id.String()}
			}
			return err
		}

		subtree, err := collectSubtree(tx, id)
		if err != nil {
			return err
		}

		var blockers int64
		if err := tx.Model(&models.Product{}).
			Where("category_id IN ?", subtree).
			Count(&blockers).Error; err != nil {
			return err
		}
		if blockers > 0 {
			return &ProtectedReferenceError{Entity: "category", Blockers: blockers}
		}

		return tx.Where("id IN ?", subtree).Delete(&models.Category{}).Error
	})
}

// collectSubtree walks the taxonomy breadth-first from root, returning root
// and every descendant id. A visited set keeps a malformed parent cycle from
// looping forever.
func collectSubtree(tx *gorm.DB, root uuid.UUID) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]bool{root: true}
	order := []uuid.UUID{root}
	frontier := []uuid.UUID{root}

	for len(frontier) > 0 {
		var children []models.Category
		if err := tx.Select("id").
			Where("parent_id IN ?", frontier).
			Find(&children).Error; err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			order = append(order, child.ID)
			frontier = append(frontier, child.ID)
		}
	}

	return order, nil
}
