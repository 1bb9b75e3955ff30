package services

import (
	"strings"

	"fiber-inventory/models"

	"go.uber.org/zap"
)

// ReservationScanner membaca baris demand dari dokumen terbuka dan melaporkan
// soft hold per (item,brand). Hanya baris STOCK_ALLOCATED yang menahan stok.
type ReservationScanner struct {
	demands DemandSource
	logger  *zap.Logger
}

func NewReservationScanner(demands DemandSource, logger *zap.Logger) *ReservationScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationScanner{demands: demands, logger: logger}
}

// Reserved menghitung hold untuk satu (item,brand), dipisah menjadi jumlah
// container (baris dalam containerUnit) dan jumlah isi (baris dalam base
// unit). Dokumen excludeDemandNo dilewati supaya sebuah demand tidak
// menghitung reservasinya sendiri saat divalidasi ulang.
func (s *ReservationScanner) Reserved(itemName, brand, containerUnit, excludeDemandNo string) (reservedCount, reservedContent int) {
	lines, err := s.demands.ListOpenDemandLines()
	if err != nil {
		// Kegagalan baca demand tidak boleh menggagalkan availability check;
		// anggap tanpa reservasi dan catat.
		s.logger.Warn("failed to list open demand lines", zap.Error(err))
		return 0, 0
	}

	for _, line := range lines {
		if line.AllocationState != models.AllocationStock {
			continue
		}
		if excludeDemandNo != "" && line.DemandNo == excludeDemandNo {
			continue
		}
		if !strings.EqualFold(line.ItemName, itemName) || !strings.EqualFold(line.Brand, brand) {
			continue
		}

		qty := ceilQuantity(line.Quantity)
		if qty <= 0 {
			continue
		}

		if strings.EqualFold(line.Unit, containerUnit) {
			reservedCount += qty
		} else {
			reservedContent += qty
		}
	}

	return reservedCount, reservedContent
}
