package models

import (
	"gorm.io/gorm"
)

// CatalogItem adalah master item per (item_name, brand): mode tracking dan
// label satuannya. Diedit lewat modul katalog (di luar engine ini).
type CatalogItem struct {
	gorm.Model
	ItemName         string  `json:"item_name" gorm:"not null;uniqueIndex:idx_catalog_item_brand"`
	Brand            string  `json:"brand" gorm:"uniqueIndex:idx_catalog_item_brand"`
	Category         string  `json:"category"`
	TrackingMode     string  `json:"tracking_mode"`
	ContainerUnit    string  `json:"container_unit"`
	BaseUnit         string  `json:"base_unit"`
	ConversionFactor float64 `json:"conversion_factor" gorm:"default:1"`
}

// ItemProfile adalah hasil resolve katalog yang dipakai kalkulator ATP dan
// planner. Item yang tidak dikenal jatuh ke default serial yang permisif,
// bukan error.
type ItemProfile struct {
	TrackingMode     string  `json:"tracking_mode"`
	ContainerUnit    string  `json:"container_unit"`
	BaseUnit         string  `json:"base_unit"`
	ConversionFactor float64 `json:"conversion_factor"`
}

// DefaultItemProfile: fallback untuk item yang tidak ada di katalog.
func DefaultItemProfile() ItemProfile {
	return ItemProfile{
		TrackingMode:     TrackingSerial,
		ContainerUnit:    "Unit",
		BaseUnit:         "Unit",
		ConversionFactor: 1,
	}
}
