package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/motoluxe/internal/catalog"
	"github.com/example/motoluxe/internal/database"
	"github.com/example/motoluxe/internal/models"
	"github.com/example/motoluxe/internal/utils"
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

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	category, err := catalog.NewCategoryService(db).Create(catalog.CategorySpec{Name: "Motos Eléctricas"})
	require.NoError(t, err)

	product, err := catalog.NewProductService(db).Create(catalog.ProductSpec{
		Name:       "Aura X1",
		CategoryID: category.ID,
		Price:      1200,
	})
	require.NoError(t, err)
	return product
}

func TestColorsIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	report, err := Colors(db)
	require.NoError(t, err)
	assert.Equal(t, len(colors), report.Created)
	assert.Equal(t, 0, report.Updated)

	report, err = Colors(db)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, len(colors), report.Updated)

	var count int64
	require.NoError(t, db.Model(&models.Color{}).Count(&count).Error)
	assert.EqualValues(t, len(colors), count)
}

func TestColorsRepairsDriftedRows(t *testing.T) {
	db := newTestDB(t)

	_, err := Colors(db)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Color{}).
		Where("name = ?", "Rojo").
		Update("hex_code", "#FF0000").Error)

	_, err = Colors(db)
	require.NoError(t, err)

	var red models.Color
	require.NoError(t, db.Where("name = ?", "Rojo").First(&red).Error)
	assert.Equal(t, "#DC2626", red.HexCode)
}

func TestAttributesCreatesCanonicalSet(t *testing.T) {
	db := newTestDB(t)

	report, err := Attributes(db, false)
	require.NoError(t, err)
	assert.Equal(t, len(attributes), report.Created)
	assert.Empty(t, report.Duplicates, "shared names are allowed duplicates")

	report, err = Attributes(db, false)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, len(attributes), report.Updated)
}

func TestAttributesSkipsLegacyWithValuesWithoutForce(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	legacy := models.AttributeDefinition{Name: "Autonomia", TypeTag: models.TypeGeneral}
	require.NoError(t, db.Create(&legacy).Error)
	require.NoError(t, db.Create(&models.AttributeValue{
		ProductID:   product.ID,
		AttributeID: legacy.ID,
		Value:       "80",
	}).Error)

	report, err := Attributes(db, false)
	require.NoError(t, err)
	assert.Contains(t, report.Skipped, "Autonomia")
	assert.Equal(t, 0, report.Migrated)

	// The legacy definition and its value survive.
	var count int64
	require.NoError(t, db.Model(&models.AttributeDefinition{}).
		Where("name = ? AND type_tag = ?", "Autonomia", models.TypeGeneral).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAttributesForceMigratesLegacyValues(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	legacy := models.AttributeDefinition{Name: "Autonomia", TypeTag: models.TypeGeneral}
	require.NoError(t, db.Create(&legacy).Error)
	require.NoError(t, db.Create(&models.AttributeValue{
		ProductID:   product.ID,
		AttributeID: legacy.ID,
		Value:       "80",
	}).Error)

	report, err := Attributes(db, true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Migrated)

	// The legacy general definition is gone.
	var count int64
	require.NoError(t, db.Model(&models.AttributeDefinition{}).
		Where("type_tag = ? AND name = ?", models.TypeGeneral, "Autonomia").
		Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// The value now hangs off the canonical electric definition.
	var canonical models.AttributeDefinition
	require.NoError(t, db.Where("name = ? AND type_tag = ?", "Autonomía", models.TypeElectric).
		First(&canonical).Error)

	var value models.AttributeValue
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&value).Error)
	assert.Equal(t, canonical.ID, value.AttributeID)
	assert.Equal(t, "80", value.Value)
}

func TestAttributesForceDropsClashingLegacyValue(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	canonical := models.AttributeDefinition{
		Name: "Autonomía", TypeTag: models.TypeElectric, Unit: "km", DisplayOrder: 15,
	}
	require.NoError(t, db.Create(&canonical).Error)
	require.NoError(t, db.Create(&models.AttributeValue{
		ProductID:   product.ID,
		AttributeID: canonical.ID,
		Value:       "100",
	}).Error)

	legacy := models.AttributeDefinition{Name: "Autonomia", TypeTag: models.TypeGeneral}
	require.NoError(t, db.Create(&legacy).Error)
	require.NoError(t, db.Create(&models.AttributeValue{
		ProductID:   product.ID,
		AttributeID: legacy.ID,
		Value:       "80",
	}).Error)

	_, err := Attributes(db, true)
	require.NoError(t, err)

	// The canonical value wins; the legacy one is dropped.
	var values []models.AttributeValue
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&values).Error)
	require.Len(t, values, 1)
	assert.Equal(t, canonical.ID, values[0].AttributeID)
	assert.Equal(t, "100", values[0].Value)
}

func TestAttributesForceRemovesShadowedDefinitions(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	shadowed := models.AttributeDefinition{Name: "Precio", TypeTag: models.TypeGeneral}
	require.NoError(t, db.Create(&shadowed).Error)
	require.NoError(t, db.Create(&models.AttributeValue{
		ProductID:   product.ID,
		AttributeID: shadowed.ID,
		Value:       "1200",
	}).Error)

	report, err := Attributes(db, false)
	require.NoError(t, err)
	assert.Contains(t, report.Skipped, "Precio")

	_, err = Attributes(db, true)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AttributeDefinition{}).
		Where("name = ?", "Precio").
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAttributesReportsUnexpectedDuplicates(t *testing.T) {
	db := newTestDB(t)

	stray := models.AttributeDefinition{Name: "Garantía", TypeTag: models.TypeElectric}
	require.NoError(t, db.Create(&stray).Error)

	report, err := Attributes(db, false)
	require.NoError(t, err)
	assert.Contains(t, report.Duplicates, "Garantía")
	assert.NotContains(t, report.Duplicates, "Velocidad Máxima")
}

func TestStaffUser(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, StaffUser(db, "admin", "Ada Admin", "secret1"))

	var user models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.True(t, user.IsStaff)
	assert.Equal(t, "Ada Admin", user.FullName)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "secret1"))

	// Re-running rotates the password and keeps the name when omitted.
	require.NoError(t, StaffUser(db, "admin", "", "secret2"))
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.Equal(t, "Ada Admin", user.FullName)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "secret2"))
	assert.False(t, utils.CheckPassword(user.PasswordHash, "secret1"))

	var validation *catalog.ValidationError
	assert.ErrorAs(t, StaffUser(db, " ", "", "x"), &validation)
	assert.ErrorAs(t, StaffUser(db, "admin", "", ""), &validation)
}
