// database/seeder.go
package database

import (
	"log"
	"time"

	"fiber-inventory/controllers/idgen"
	"fiber-inventory/models"
	"fiber-inventory/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedCatalog(db)
	SeedStock(db)
}

func SeedUserMaster(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("inventory123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := []models.User{
		{Username: "admin", Name: "Administrator", Email: "admin@example.com", Password: string(hashed), Role: "admin"},
		{Username: "tech-budi", Name: "Budi Teknisi", Email: "budi@example.com", Password: string(hashed), Role: "technician"},
	}

	for _, user := range users {
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", user.Username, err)
		}
	}
}

func SeedCatalog(db *gorm.DB) {
	items := []models.CatalogItem{
		{
			ItemName:         "Dropcore Cable",
			Brand:            "FiberHome",
			Category:         "CABLE",
			TrackingMode:     models.TrackingBulkMeasure,
			ContainerUnit:    "Roll",
			BaseUnit:         "Meter",
			ConversionFactor: 1000,
		},
		{
			ItemName:         "Fast Connector",
			Brand:            "Generic",
			Category:         "ACCESSORY",
			TrackingMode:     models.TrackingBulkCount,
			ContainerUnit:    "Pcs",
			BaseUnit:         "Pcs",
			ConversionFactor: 1,
		},
		{
			ItemName:         "ONT Router",
			Brand:            "ZTE",
			Category:         "DEVICE",
			TrackingMode:     models.TrackingSerial,
			ContainerUnit:    "Unit",
			BaseUnit:         "Unit",
			ConversionFactor: 1,
		},
	}

	for _, item := range items {
		var existing models.CatalogItem
		err := db.Where("item_name = ? AND brand = ?", item.ItemName, item.Brand).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&item).Error; err != nil {
				log.Fatalf("Failed to seed catalog item %s: %v", item.ItemName, err)
			}
		}
	}
}

func SeedStock(db *gorm.DB) {
	var count int64
	db.Model(&models.StockRecord{}).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now()
	records := []models.StockRecord{
		{
			ID:              types.SnowflakeID(idgen.GenerateID()),
			ItemName:        "Dropcore Cable",
			Brand:           "FiberHome",
			TrackingMode:    models.TrackingBulkMeasure,
			Status:          models.StatusInStorage,
			Location:        "GUDANG-01",
			InitialCapacity: 1000,
			CurrentBalance:  1000,
			Unit:            "Meter",
			RegisteredAt:    now,
			CreatedBy:       "seeder",
		},
		{
			ID:           types.SnowflakeID(idgen.GenerateID()),
			ItemName:     "ONT Router",
			Brand:        "ZTE",
			TrackingMode: models.TrackingSerial,
			Status:       models.StatusInStorage,
			Location:     "GUDANG-01",
			SerialNumber: "ZTE-0001",
			Unit:         "Unit",
			RegisteredAt: now,
			CreatedBy:    "seeder",
		},
	}

	for _, rec := range records {
		if err := db.Create(&rec).Error; err != nil {
			log.Fatalf("Failed to seed stock record: %v", err)
		}
	}
}
