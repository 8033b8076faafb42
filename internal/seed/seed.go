// Package seed provisions the predefined colors and attribute definitions
// and migrates legacy attribute data onto the canonical definitions.
package seed

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/catalog"
	"github.com/example/motoluxe/internal/models"
	"github.com/example/motoluxe/internal/utils"
)

// Report summarizes a seeding run.
type Report struct {
	Created  int
	Updated  int
	Migrated int
	// Skipped lists work that needed --force: legacy definitions still
	// holding values that were therefore left untouched.
	Skipped []string
	// Duplicates lists attribute names defined under more than one type
	// tag, excluding the intentionally shared ones.
	Duplicates []string
}

var colors = []models.Color{
	{Name: "Negro", HexCode: "#000000", DisplayOrder: 1},
	{Name: "Blanco", HexCode: "#FFFFFF", DisplayOrder: 2},
	{Name: "Rojo", HexCode: "#DC2626", DisplayOrder: 3},
	{Name: "Azul", HexCode: "#2563EB", DisplayOrder: 4},
	{Name: "Verde", HexCode: "#16A34A", DisplayOrder: 5},
	{Name: "Amarillo", HexCode: "#EAB308", DisplayOrder: 6},
	{Name: "Naranja", HexCode: "#EA580C", DisplayOrder: 7},
	{Name: "Gris", HexCode: "#6B7280", DisplayOrder: 8},
	{Name: "Plateado", HexCode: "#C0C0C0", DisplayOrder: 9},
	{Name: "Dorado", HexCode: "#D4AF37", DisplayOrder: 10},
	{Name: "Azul Marino", HexCode: "#1E3A8A", DisplayOrder: 11},
	{Name: "Verde Militar", HexCode: "#4B5320", DisplayOrder: 12},
}

type attributeSeed struct {
	Name    string
	TypeTag string
	Unit    string
	Order   int
}

var attributes = []attributeSeed{
	// Shared by every product type
	{Name: "Color", TypeTag: models.TypeGeneral, Order: 2},
	{Name: "Garantía", TypeTag: models.TypeGeneral, Order: 99},
	{Name: "Mensajería", TypeTag: models.TypeGeneral, Order: 100},

	// Electric motorcycles, e-bikes and mopeds
	{Name: "Potencia del Motor", TypeTag: models.TypeElectric, Unit: "W", Order: 10},
	{Name: "Voltaje de Batería", TypeTag: models.TypeElectric, Unit: "V", Order: 11},
	{Name: "Capacidad de Batería", TypeTag: models.TypeElectric, Unit: "Ah", Order: 12},
	{Name: "Tipo de Batería", TypeTag: models.TypeElectric, Order: 13},
	{Name: "Velocidad Máxima", TypeTag: models.TypeElectric, Unit: "km/h", Order: 14},
	{Name: "Autonomía", TypeTag: models.TypeElectric, Unit: "km", Order: 15},
	{Name: "Tiempo de Carga", TypeTag: models.TypeElectric, Unit: "horas", Order: 16},
	{Name: "Incluye", TypeTag: models.TypeElectric, Order: 17},

	// Combustion motorcycles
	{Name: "Cilindraje", TypeTag: models.TypeCombustion, Unit: "cc", Order: 20},
	{Name: "Tipo de Motor", TypeTag: models.TypeCombustion, Order: 21},
	{Name: "Sistema de Enfriamiento", TypeTag: models.TypeCombustion, Order: 22},
	{Name: "Capacidad del Tanque", TypeTag: models.TypeCombustion, Unit: "L", Order: 23},
	{Name: "Velocidad Máxima", TypeTag: models.TypeCombustion, Unit: "km/h", Order: 24},
	{Name: "Rendimiento", TypeTag: models.TypeCombustion, Unit: "km/L", Order: 25},
	{Name: "Sistema de Arranque", TypeTag: models.TypeCombustion, Order: 26},
	{Name: "Transmisión", TypeTag: models.TypeCombustion, Order: 27},
	{Name: "Tipo de Frenos", TypeTag: models.TypeCombustion, Order: 28},

	// Cargo trikes
	{Name: "Tipo de Energía", TypeTag: models.TypeCargoTrike, Order: 30},
	{Name: "Potencia/Cilindraje", TypeTag: models.TypeCargoTrike, Order: 31},
	{Name: "Voltaje de Batería", TypeTag: models.TypeCargoTrike, Unit: "V", Order: 32},
	{Name: "Capacidad de Batería", TypeTag: models.TypeCargoTrike, Unit: "Ah", Order: 33},
	{Name: "Capacidad de Carga", TypeTag: models.TypeCargoTrike, Unit: "kg", Order: 34},
	{Name: "Dimensiones de Caja", TypeTag: models.TypeCargoTrike, Unit: "m", Order: 35},
	{Name: "Tipo de Estructura", TypeTag: models.TypeCargoTrike, Order: 36},
	{Name: "Tracción", TypeTag: models.TypeCargoTrike, Order: 37},
	{Name: "Sistema de Marchas", TypeTag: models.TypeCargoTrike, Order: 38},
	{Name: "Tipo de Cabina", TypeTag: models.TypeCargoTrike, Order: 39},
}

// Definitions that duplicate first-class product columns and must not live
// as attributes.
var shadowedByModelFields = []string{"Precio", "Cantidad en Stock"}

// Legacy general-tagged definitions (with spelling variations) that belong
// under a specific type tag.
type migration struct {
	Canonical  string
	Variations []string
	TargetTag  string
	Unit       string
	Order      int
}

var migrations = []migration{
	{
		Canonical:  "Autonomía",
		Variations: []string{"Autonomia", "Autonomía", "autonomia", "autonomía"},
		TargetTag:  models.TypeElectric,
		Unit:       "km",
		Order:      15,
	},
	{
		Canonical:  "Capacidad de Batería",
		Variations: []string{"Capacidad de la bateria", "Capacidad de bateria", "Capacidad de Batería", "Capacidad de la Batería"},
		TargetTag:  models.TypeElectric,
		Unit:       "Ah",
		Order:      12,
	},
	{
		Canonical:  "Potencia del Motor",
		Variations: []string{"Potencia del motor", "Potencia del Motor", "potencia del motor"},
		TargetTag:  models.TypeElectric,
		Unit:       "W",
		Order:      10,
	},
	{
		Canonical:  "Peso de carga",
		Variations: []string{"Peso de carga", "Peso de Carga", "peso de carga"},
		TargetTag:  models.TypeCargoTrike,
		Unit:       "kg",
		Order:      32,
	},
}

// Names intentionally defined under more than one type tag.
var allowedDuplicates = map[string]bool{
	"Velocidad Máxima":     true,
	"Voltaje de Batería":   true,
	"Capacidad de Batería": true,
}

// Colors upserts the predefined color palette.
func Colors(db *gorm.DB) (Report, error) {
	var report Report

	for _, seed := range colors {
		var existing models.Color
		err := db.Where("name = ?", seed.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := seed
			row.IsActive = true
			if err := db.Create(&row).Error; err != nil {
				return report, err
			}
			report.Created++
		case err != nil:
			return report, err
		default:
			existing.HexCode = seed.HexCode
			existing.DisplayOrder = seed.DisplayOrder
			if err := db.Save(&existing).Error; err != nil {
				return report, err
			}
			report.Updated++
		}
	}

	return report, nil
}

// Attributes upserts the canonical definition list. With force it first
// removes definitions shadowed by model fields and migrates misfiled
// general-tagged values onto their typed canonical definitions; without
// force such definitions are reported in Skipped and left alone.
func Attributes(db *gorm.DB, force bool) (Report, error) {
	var report Report

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := removeShadowed(tx, force, &report); err != nil {
			return err
		}
		if err := migrateLegacy(tx, force, &report); err != nil {
			return err
		}
		if err := upsertCanonical(tx, &report); err != nil {
			return err
		}
		return reportDuplicates(tx, &report)
	})

	return report, err
}

func removeShadowed(tx *gorm.DB, force bool, report *Report) error {
	for _, name := range shadowedByModelFields {
		var def models.AttributeDefinition
		err := tx.Where("name = ? AND type_tag = ?", name, models.TypeGeneral).First(&def).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		var valueCount int64
		if err := tx.Model(&models.AttributeValue{}).
			Where("attribute_id = ?", def.ID).
			Count(&valueCount).Error; err != nil {
			return err
		}

		if valueCount > 0 && !force {
			report.Skipped = append(report.Skipped, def.Name)
			continue
		}

		if valueCount > 0 {
			if err := tx.Where("attribute_id = ?", def.ID).
				Delete(&models.AttributeValue{}).Error; err != nil {
				return err
			}
			report.Migrated += int(valueCount)
		}
		if err := tx.Delete(&def).Error; err != nil {
			return err
		}
	}
	return nil
}

func migrateLegacy(tx *gorm.DB, force bool, report *Report) error {
	for _, m := range migrations {
		for _, variation := range m.Variations {
			var legacy models.AttributeDefinition
			err := tx.Where("name = ? AND type_tag = ?", variation, models.TypeGeneral).
				First(&legacy).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var values []models.AttributeValue
			if err := tx.Where("attribute_id = ?", legacy.ID).Find(&values).Error; err != nil {
				return err
			}

			if len(values) > 0 && !force {
				report.Skipped = append(report.Skipped, legacy.Name)
				continue
			}

			if len(values) > 0 {
				canonical, err := getOrCreateDefinition(tx, m.Canonical, m.TargetTag, m.Unit, m.Order)
				if err != nil {
					return err
				}

				for _, value := range values {
					// A product may already hold a value for the
					// canonical definition; the legacy row loses.
					var clash int64
					if err := tx.Model(&models.AttributeValue{}).
						Where("product_id = ? AND attribute_id = ?", value.ProductID, canonical.ID).
						Count(&clash).Error; err != nil {
						return err
					}
					if clash > 0 {
						if err := tx.Delete(&value).Error; err != nil {
							return err
						}
						continue
					}

					if err := tx.Model(&value).Update("attribute_id", canonical.ID).Error; err != nil {
						return err
					}
					report.Migrated++
				}
			}

			if err := tx.Delete(&legacy).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func upsertCanonical(tx *gorm.DB, report *Report) error {
	for _, seed := range attributes {
		var existing models.AttributeDefinition
		err := tx.Where("name = ? AND type_tag = ?", seed.Name, seed.TypeTag).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := models.AttributeDefinition{
				Name:         seed.Name,
				TypeTag:      seed.TypeTag,
				Unit:         seed.Unit,
				DisplayOrder: seed.Order,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			report.Created++
		case err != nil:
			return err
		default:
			existing.Unit = seed.Unit
			existing.DisplayOrder = seed.Order
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			report.Updated++
		}
	}
	return nil
}

func reportDuplicates(tx *gorm.DB, report *Report) error {
	type dup struct {
		Name  string
		Count int64
	}
	var dups []dup
	if err := tx.Model(&models.AttributeDefinition{}).
		Select("name, count(*) as count").
		Group("name").
		Having("count(*) > 1").
		Scan(&dups).Error; err != nil {
		return err
	}

	for _, d := range dups {
		if allowedDuplicates[d.Name] {
			continue
		}
		report.Duplicates = append(report.Duplicates, d.Name)
	}
	return nil
}

func getOrCreateDefinition(tx *gorm.DB, name, typeTag, unit string, order int) (*models.AttributeDefinition, error) {
	var def models.AttributeDefinition
	err := tx.Where("name = ? AND type_tag = ?", name, typeTag).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def = models.AttributeDefinition{
			Name:         name,
			TypeTag:      typeTag,
			Unit:         unit,
			DisplayOrder: order,
		}
		if err := tx.Create(&def).Error; err != nil {
			return nil, err
		}
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// StaffUser provisions a staff account for the admin panel, updating the
// password when the username already exists.
func StaffUser(db *gorm.DB, username, fullName, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &catalog.ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return &catalog.ValidationError{Field: "password", Message: "is required"}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	var user models.User
	err = db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username:     username,
			FullName:     fullName,
			PasswordHash: hash,
			IsStaff:      true,
		}
		return db.Create(&user).Error
	}
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.IsStaff = true
	if fullName != "" {
		user.FullName = fullName
	}
	return db.Save(&user).Error
}
