// database/migrate.go
package database

import (
	"fiber-inventory/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CatalogItem{},
		&models.StockRecord{},
		&models.MovementEntry{},
		&models.DemandHeader{},
		&models.DemandDetail{},
	)
}
