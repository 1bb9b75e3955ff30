package models

import (
	"time"

	"fiber-inventory/types"

	"gorm.io/gorm"
)

// Tracking mode per (item,brand), dari master catalog.
const (
	TrackingSerial      = "unique_serial"
	TrackingBulkCount   = "bulk_count"
	TrackingBulkMeasure = "bulk_measurement"
)

// Status fisik satu record stok.
const (
	StatusInStorage      = "IN_STORAGE"
	StatusInCustody      = "IN_CUSTODY"
	StatusInUse          = "IN_USE"
	StatusDamaged        = "DAMAGED"
	StatusConsumed       = "CONSUMED"
	StatusAwaitingReturn = "AWAITING_RETURN"
)

// StockRecord adalah satu record inventori fisik. Untuk item serial satu
// record = satu unit (tanpa balance); untuk bulk, CurrentBalance menyimpan
// sisa isi dan InitialCapacity isi awal container.
type StockRecord struct {
	gorm.Model
	ID              types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	ItemName        string            `json:"item_name" gorm:"not null;index:idx_item_brand" validate:"required"`
	Brand           string            `json:"brand" gorm:"index:idx_item_brand"`
	TrackingMode    string            `json:"tracking_mode"`
	Status          string            `json:"status" gorm:"index"`
	HolderIdentity  string            `json:"holder_identity" gorm:"default:null"`
	Location        string            `json:"location"`
	SerialNumber    string            `json:"serial_number"`
	InitialCapacity int               `json:"initial_capacity" gorm:"default:0"`
	CurrentBalance  int               `json:"current_balance" gorm:"default:0"`
	Unit            string            `json:"unit"`
	RegisteredAt    time.Time         `json:"registered_at"`
	ParentRecordID  types.SnowflakeID `json:"parent_record_id" gorm:"default:null"`
	CreatedBy       string            `json:"created_by"`
	UpdatedBy       string            `json:"updated_by"`
}

// IsTerminal: record CONSUMED tidak boleh dimutasi lagi.
func (r *StockRecord) IsTerminal() bool {
	return r.Status == StatusConsumed
}

// IsOpened reports whether a bulk-measurement container has already been
// drawn from.
func (r *StockRecord) IsOpened() bool {
	return r.TrackingMode == TrackingBulkMeasure && r.CurrentBalance < r.InitialCapacity
}
