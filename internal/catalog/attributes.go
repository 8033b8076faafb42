package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/models"
)

// AttributeRegistry manages attribute definitions.
type AttributeRegistry struct {
	db *gorm.DB
}

// NewAttributeRegistry constructs AttributeRegistry.
func NewAttributeRegistry(db *gorm.DB) *AttributeRegistry {
	return &AttributeRegistry{db: db}
}

// DefinitionSpec is the write payload for an attribute definition.
type DefinitionSpec struct {
	Name         string
	TypeTag      string
	Unit         string
	DisplayOrder int
}

func (s *DefinitionSpec) validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if s.TypeTag == "" {
		s.TypeTag = models.TypeGeneral
	}
	if !models.ValidTypeTag(s.TypeTag) {
		return &ValidationError{Field: "type_tag", Message: "unknown type tag"}
	}
	return nil
}

// Define creates a new attribute definition. The (name, type tag) pair must
// be unused; the same name under another tag is fine.
func (r *AttributeRegistry) Define(spec DefinitionSpec) (*models.AttributeDefinition, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	def := &models.AttributeDefinition{
		Name:         spec.Name,
		TypeTag:      spec.TypeTag,
		Unit:         spec.Unit,
		DisplayOrder: spec.DisplayOrder,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AttributeDefinition{}).
			Where("name = ? AND type_tag = ?", spec.Name, spec.TypeTag).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &DuplicateDefinitionError{Name: spec.Name, TypeTag: spec.TypeTag}
		}
		return tx.Create(def).Error
	})
	if err != nil {
		return nil, err
	}

	return def, nil
}

// Update modifies an existing definition. Renames onto an occupied
// (name, type tag) pair are rejected the same way Define rejects them.
func (r *AttributeRegistry) Update(id uuid.UUID, spec DefinitionSpec) (*models.AttributeDefinition, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	var def models.AttributeDefinition
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&def, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "attribute definition", ID: id.String()}
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.AttributeDefinition{}).
			Where("name = ? AND type_tag = ? AND id <> ?", spec.Name, spec.TypeTag, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &DuplicateDefinitionError{Name: spec.Name, TypeTag: spec.TypeTag}
		}

		def.Name = spec.Name
		def.TypeTag = spec.TypeTag
		def.Unit = spec.Unit
		def.DisplayOrder = spec.DisplayOrder
		return tx.Save(&def).Error
	})
	if err != nil {
		return nil, err
	}

	return &def, nil
}

// Get loads one definition by id.
func (r *AttributeRegistry) Get(id uuid.UUID) (*models.AttributeDefinition, error) {
	var def models.AttributeDefinition
	if err := r.db.First(&def, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "attribute definition", ID: id.String()}
		}
		return nil, err
	}
	return &def, nil
}

// List returns all definitions, optionally restricted to one type tag,
// ordered the way they are displayed.
func (r *AttributeRegistry) List(typeTag string) ([]models.AttributeDefinition, error) {
	query := r.db.Model(&models.AttributeDefinition{})
	if typeTag != "" {
		query = query.Where("type_tag = ?", typeTag)
	}

	var defs []models.AttributeDefinition
	if err := query.Order("display_order, name").Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// ResolveApplicable returns the definitions a product of the given type may
// populate: the general set plus the type-specific set, ordered by
// (display order, name).
func (r *AttributeRegistry) ResolveApplicable(typeTag string) ([]models.AttributeDefinition, error) {
	if !models.ValidTypeTag(typeTag) {
		typeTag = models.TypeGeneral
	}

	query := r.db.Where("type_tag = ?", models.TypeGeneral)
	if typeTag != models.TypeGeneral {
		query = r.db.Where("type_tag IN ?", []string{models.TypeGeneral, typeTag})
	}

	var defs []models.AttributeDefinition
	if err := query.Order("display_order, name").Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// ResolveForCategory resolves the applicable definitions for a category,
// inferring the type tag from the category when it has no explicit one.
func (r *AttributeRegistry) ResolveForCategory(categoryID uuid.UUID) ([]models.AttributeDefinition, string, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", &NotFoundError{Entity: "category", ID: categoryID.String()}
		}
		return nil, "", err
	}

	tag := EffectiveTypeTag(&category)
	defs, err := r.ResolveApplicable(tag)
	return defs, tag, err
}

// Delete removes a definition. Definitions referenced by attribute values are
// protected; the error carries how many values block the delete.
func (r *AttributeRegistry) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var def models.AttributeDefinition
		if err := tx.First(&def, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "attribute definition", ID: id.String()}
			}
			return err
		}

		var blockers int64
		if err := tx.Model(&models.AttributeValue{}).
			Where("attribute_id = ?", id).
			Count(&blockers).Error; err != nil {
			return err
		}
		if blockers > 0 {
			return &ProtectedReferenceError{Entity: "attribute definition", Blockers: blockers}
		}

		return tx.Delete(&def).Error
	})
}
