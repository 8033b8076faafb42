package catalog

import "fmt"

// ValidationError reports a missing or invalid field on a write request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// DuplicateDefinitionError reports an attribute definition name already taken
// under the same type tag.
type DuplicateDefinitionError struct {
	Name    string
	TypeTag string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("attribute definition %q already exists for type %q", e.Name, e.TypeTag)
}

// DuplicateValueError reports a second value for an already populated
// (product, attribute) pair on the insert-only path.
type DuplicateValueError struct {
	ProductID   string
	AttributeID string
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("product %s already has a value for attribute %s", e.ProductID, e.AttributeID)
}

// DuplicateSKUError reports a SKU collision. SKUs are never regenerated on
// collision; the caller decides what to do.
type DuplicateSKUError struct {
	SKU string
}

func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("sku %q already exists", e.SKU)
}

// ProtectedReferenceError reports a delete blocked by dependent rows.
type ProtectedReferenceError struct {
	Entity   string
	Blockers int64
}

func (e *ProtectedReferenceError) Error() string {
	return fmt.Sprintf("%s is referenced by %d dependent record(s)", e.Entity, e.Blockers)
}
