// Package migrations runs the gorm auto-migrations for all tables.
package migrations

import (
	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
)

func MigrateCatalogTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PlanModel{},
		&models.ModuleModel{},
		&models.BundleModel{},
		&models.PromoCodeModel{},
	)
}

func MigrateSubscriptionTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SubscriptionModel{},
		&models.PaymentModel{},
		&models.ModuleGrantModel{},
	)
}

func MigrateCommissionTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CommissionPolicyModel{},
		&models.CommissionRecordModel{},
	)
}

// MigrateAll runs every table migration in dependency order.
func MigrateAll(db *gorm.DB) error {
	if err := MigrateCatalogTables(db); err != nil {
		return err
	}
	if err := MigrateSubscriptionTables(db); err != nil {
		return err
	}
	return MigrateCommissionTables(db)
}
