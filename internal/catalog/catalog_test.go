package catalog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/motoluxe/internal/database"
	"github.com/example/motoluxe/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category, err := NewCategoryService(db).Create(CategorySpec{Name: name})
	require.NoError(t, err)
	return category
}

func mustDefinition(t *testing.T, db *gorm.DB, spec DefinitionSpec) *models.AttributeDefinition {
	t.Helper()

	def, err := NewAttributeRegistry(db).Define(spec)
	require.NoError(t, err)
	return def
}

func mustProduct(t *testing.T, db *gorm.DB, spec ProductSpec) *models.Product {
	t.Helper()

	product, err := NewProductService(db).Create(spec)
	require.NoError(t, err)
	return product
}
