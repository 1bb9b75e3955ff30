package models

import (
	"gorm.io/gorm"
)

// Status dokumen demand. Dokumen OPEN / PARTIAL masih menahan reservasi,
// dokumen terminal tidak.
const (
	DemandOpen      = "OPEN"
	DemandPartial   = "PARTIAL"
	DemandCompleted = "COMPLETED"
	DemandCancelled = "CANCELLED"
)

// Allocation state per baris demand. Hanya STOCK_ALLOCATED yang membuat
// soft reservation terhadap stok fisik.
const (
	AllocationNone        = "NONE"
	AllocationStock       = "STOCK_ALLOCATED"
	AllocationProcurement = "PROCUREMENT_NEEDED"
)

// DemandHeader dimiliki modul dokumen permintaan (di luar engine ini);
// engine hanya membacanya lewat reservation scanner.
type DemandHeader struct {
	gorm.Model
	DemandNo    string `json:"demand_no" gorm:"uniqueIndex;not null"`
	DemandType  string `json:"demand_type"` // procurement / loan
	CustomerID  string `json:"customer_id"`
	Status      string `json:"status" gorm:"index"`
	RequestedBy string `json:"requested_by"`
}

type DemandDetail struct {
	gorm.Model
	DemandID        uint    `json:"demand_id" gorm:"index"`
	ItemName        string  `json:"item_name"`
	Brand           string  `json:"brand"`
	Quantity        float64 `json:"quantity" gorm:"default:0"`
	Unit            string  `json:"unit"`
	AllocationState string  `json:"allocation_state" gorm:"default:NONE"`
}

// DemandLine adalah view gabungan header+detail yang dikonsumsi scanner.
type DemandLine struct {
	DemandNo        string  `json:"demand_no"`
	ItemName        string  `json:"item_name"`
	Brand           string  `json:"brand"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	AllocationState string  `json:"allocation_state"`
}
