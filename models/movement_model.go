package models

import (
	"time"

	"gorm.io/gorm"
)

// Jenis movement. Arah (masuk/keluar) ditentukan oleh tipenya,
// quantity selalu disimpan positif.
const (
	MovementReceipt          = "RECEIPT"
	MovementReturn           = "RETURN"
	MovementAdjustIn         = "ADJUST_IN"
	MovementIssue            = "ISSUE"
	MovementConsumeWarehouse = "CONSUME_WAREHOUSE"
	MovementConsumeCustody   = "CONSUME_CUSTODY"
	MovementAdjustOut        = "ADJUST_OUT"
)

// MovementEntry adalah satu baris ledger, immutable setelah insert kecuali
// BalanceAfter yang dihitung ulang saat ada entry masuk tidak urut waktu.
// Ledger di-key per (item_name, brand), bukan per record id, karena id record
// bisa berganti identitas lewat split.
type MovementEntry struct {
	gorm.Model
	ItemName     string    `json:"item_name" gorm:"not null;index:idx_move_item_brand" validate:"required"`
	Brand        string    `json:"brand" gorm:"index:idx_move_item_brand"`
	MovementType string    `json:"movement_type" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"default:0"`
	Unit         string    `json:"unit"`
	ReferenceNo  string    `json:"reference_no"`
	Actor        string    `json:"actor"`
	MovedAt      time.Time `json:"moved_at" gorm:"index"`
	BalanceAfter int       `json:"balance_after" gorm:"default:0"`
}

// IsInboundMovement melaporkan apakah tipe movement menambah saldo berjalan.
func IsInboundMovement(movementType string) bool {
	switch movementType {
	case MovementReceipt, MovementReturn, MovementAdjustIn:
		return true
	}
	return false
}

// IsKnownMovement guards the ledger against uncategorized types.
func IsKnownMovement(movementType string) bool {
	switch movementType {
	case MovementReceipt, MovementReturn, MovementAdjustIn,
		MovementIssue, MovementConsumeWarehouse, MovementConsumeCustody, MovementAdjustOut:
		return true
	}
	return false
}
