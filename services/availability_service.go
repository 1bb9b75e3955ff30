package services

import (
	"fmt"
	"strings"

	"fiber-inventory/models"
	"fiber-inventory/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Unit target sebuah request availability.
const (
	UnitTypeContainer = "container"
	UnitTypeBase      = "base"
)

// AvailabilityReport adalah jawaban lengkap "berapa yang benar-benar bisa
// dipakai". Tidak pernah berupa error; stok kosong dinyatakan lewat angka.
type AvailabilityReport struct {
	ItemName             string              `json:"item_name"`
	Brand                string              `json:"brand"`
	PhysicalCount        int                 `json:"physical_count"`
	TotalContent         int                 `json:"total_content"`
	ReservedCount        int                 `json:"reserved_count"`
	ReservedContent      int                 `json:"reserved_content"`
	AvailableCount       int                 `json:"available_count"`
	AvailableContent     int                 `json:"available_content"`
	AvailableSmart       int                 `json:"available_smart"`
	IsSufficient         bool                `json:"is_sufficient"`
	IsFragmented         bool                `json:"is_fragmented"`
	UnitType             string              `json:"unit_type"`
	ContainerUnit        string              `json:"container_unit"`
	BaseUnit             string              `json:"base_unit"`
	RecommendedSourceIDs []types.SnowflakeID `json:"recommended_source_ids"`
}

// DemandRequirement adalah satu baris kebutuhan yang divalidasi terhadap ATP.
type DemandRequirement struct {
	ItemName string  `json:"item_name" validate:"required"`
	Brand    string  `json:"brand"`
	Quantity float64 `json:"quantity" validate:"required"`
	Unit     string  `json:"unit"`
}

// AvailabilityService adalah kalkulator Available-To-Promise: stok fisik
// dikurangi soft reservation dari dokumen demand terbuka.
type AvailabilityService struct {
	stocks  StockStore
	scanner *ReservationScanner
	catalog CatalogResolver
	logger  *zap.Logger
}

func NewAvailabilityService(stocks StockStore, scanner *ReservationScanner, catalog CatalogResolver, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{stocks: stocks, scanner: scanner, catalog: catalog, logger: logger}
}

// ceilQuantity membulatkan ke atas ke satuan dasar utuh. Domain ini tidak
// mengenal konsumsi pecahan di bawah satu base unit.
func ceilQuantity(qty float64) int {
	if qty <= 0 {
		return 0
	}
	return int(decimal.NewFromFloat(qty).Ceil().IntPart())
}

func (s *AvailabilityService) resolveProfile(itemName, brand string) models.ItemProfile {
	profile, err := s.catalog.ResolveItem(itemName, brand)
	if err != nil {
		// Catalog miss bukan error: fallback ke default serial.
		s.logger.Debug("catalog miss, falling back to serial defaults",
			zap.String("item", itemName), zap.String("brand", brand))
		return models.DefaultItemProfile()
	}
	return profile
}

// requestUnitType menentukan apakah request menargetkan container utuh atau
// isi (base unit). Hanya bulk-measurement yang punya dua satuan; selain itu
// semuanya adalah request container.
func requestUnitType(profile models.ItemProfile, requestUnit string) string {
	if profile.TrackingMode != models.TrackingBulkMeasure {
		return UnitTypeContainer
	}
	if requestUnit != "" && strings.EqualFold(requestUnit, profile.ContainerUnit) {
		return UnitTypeContainer
	}
	return UnitTypeBase
}

// sortPool mengurutkan kandidat: untuk request base unit, container yang
// sudah dibuka (balance < capacity) didahulukan supaya sisa dihabiskan dulu;
// seri waktu registrasi (FIFO) sebagai pemecah seri. Request container murni
// FIFO.
func sortPool(pool []models.StockRecord, unitType string) {
	slices.SortStableFunc(pool, func(a, b models.StockRecord) int {
		if unitType == UnitTypeBase {
			aOpened := a.CurrentBalance < a.InitialCapacity
			bOpened := b.CurrentBalance < b.InitialCapacity
			if aOpened != bOpened {
				if aOpened {
					return -1
				}
				return 1
			}
		}
		if a.RegisteredAt.Before(b.RegisteredAt) {
			return -1
		}
		if a.RegisteredAt.After(b.RegisteredAt) {
			return 1
		}
		return 0
	})
}

// CheckAvailability menjawab berapa banyak (itemName, brand) yang tersedia
// untuk komitmen baru. Tidak pernah gagal; ketiadaan stok dinyatakan dalam
// report.
func (s *AvailabilityService) CheckAvailability(itemName, brand string, qtyNeeded float64, requestUnit, excludeDemandNo string) AvailabilityReport {
	profile := s.resolveProfile(itemName, brand)
	need := ceilQuantity(qtyNeeded)
	unitType := requestUnitType(profile, requestUnit)

	report := AvailabilityReport{
		ItemName:      itemName,
		Brand:         brand,
		UnitType:      unitType,
		ContainerUnit: profile.ContainerUnit,
		BaseUnit:      profile.BaseUnit,
	}

	pool, err := s.stocks.FindInStorage(itemName, brand)
	if err != nil {
		// Kontrak: availability check tidak melempar error.
		s.logger.Error("failed to read stock pool", zap.Error(err),
			zap.String("item", itemName), zap.String("brand", brand))
		pool = nil
	}

	// Total isi dihitung dari pool tanpa restriksi.
	for _, rec := range pool {
		report.TotalContent += rec.CurrentBalance
	}

	// Permintaan container utuh tidak bisa dipenuhi container yang sudah
	// dibuka: pool dibatasi ke record yang masih penuh.
	restricted := pool
	if profile.TrackingMode == models.TrackingBulkMeasure && unitType == UnitTypeContainer {
		restricted = make([]models.StockRecord, 0, len(pool))
		for _, rec := range pool {
			if rec.CurrentBalance >= rec.InitialCapacity {
				restricted = append(restricted, rec)
			}
		}
	}
	report.PhysicalCount = len(restricted)

	report.ReservedCount, report.ReservedContent = s.scanner.Reserved(itemName, brand, profile.ContainerUnit, excludeDemandNo)

	sorted := make([]models.StockRecord, len(restricted))
	copy(sorted, restricted)
	sortPool(sorted, unitType)

	report.AvailableCount = report.PhysicalCount - report.ReservedCount
	if report.AvailableCount < 0 {
		report.AvailableCount = 0
	}

	// Record paling depan dianggap sudah diklaim reservasi level container;
	// sisanya yang membentuk isi tersedia.
	available := sorted
	if report.ReservedCount > 0 {
		if report.ReservedCount >= len(sorted) {
			available = nil
		} else {
			available = sorted[report.ReservedCount:]
		}
	}

	for _, rec := range available {
		report.AvailableContent += rec.CurrentBalance
	}
	report.AvailableContent -= report.ReservedContent
	if report.AvailableContent < 0 {
		report.AvailableContent = 0
	}

	if unitType == UnitTypeBase {
		report.AvailableSmart = report.AvailableContent
		report.IsSufficient = report.AvailableContent >= need
	} else {
		report.AvailableSmart = report.AvailableCount
		report.IsSufficient = report.AvailableCount >= need
	}

	// Fragmentasi hanya bermakna untuk request base unit: cukup secara total
	// tapi tidak ada satu record pun yang sanggup sendirian.
	if unitType == UnitTypeBase && report.IsSufficient && need > 0 {
		single := false
		for _, rec := range available {
			if rec.CurrentBalance >= need {
				single = true
				break
			}
		}
		report.IsFragmented = !single
	}

	report.RecommendedSourceIDs = recommendSources(available, unitType, need)

	return report
}

// recommendSources memilih record sumber: satu record yang cukup sendirian
// kalau ada, atau akumulasi berurutan sampai kebutuhan terpenuhi.
func recommendSources(available []models.StockRecord, unitType string, need int) []types.SnowflakeID {
	if need <= 0 || len(available) == 0 {
		return nil
	}

	if unitType == UnitTypeContainer {
		n := need
		if n > len(available) {
			n = len(available)
		}
		ids := make([]types.SnowflakeID, 0, n)
		for _, rec := range available[:n] {
			ids = append(ids, rec.ID)
		}
		return ids
	}

	for _, rec := range available {
		if rec.CurrentBalance >= need {
			return []types.SnowflakeID{rec.ID}
		}
	}

	var ids []types.SnowflakeID
	running := 0
	for _, rec := range available {
		if rec.CurrentBalance <= 0 {
			continue
		}
		ids = append(ids, rec.ID)
		running += rec.CurrentBalance
		if running >= need {
			break
		}
	}
	return ids
}

// ValidateDemand memeriksa semua baris kebutuhan sekaligus dan mengumpulkan
// setiap kekurangan, tidak berhenti di baris pertama yang gagal.
func (s *AvailabilityService) ValidateDemand(lines []DemandRequirement, excludeDemandNo string) (bool, []string) {
	var errs []string

	for _, line := range lines {
		report := s.CheckAvailability(line.ItemName, line.Brand, line.Quantity, line.Unit, excludeDemandNo)
		if report.IsSufficient {
			continue
		}

		need := ceilQuantity(line.Quantity)
		deficit := need - report.AvailableSmart
		if deficit < 0 {
			deficit = need
		}

		unit := line.Unit
		if unit == "" {
			if report.UnitType == UnitTypeBase {
				unit = report.BaseUnit
			} else {
				unit = report.ContainerUnit
			}
		}

		shortage := &ShortageError{ItemName: displayName(line.ItemName, line.Brand), Unit: unit, Deficit: deficit}
		errs = append(errs, shortage.Error())
	}

	return len(errs) == 0, errs
}

func displayName(itemName, brand string) string {
	if brand == "" {
		return itemName
	}
	return fmt.Sprintf("%s (%s)", itemName, brand)
}
