package services

import (
	"time"

	"fiber-inventory/models"
	"fiber-inventory/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsumptionLine adalah satu baris input transaksi konsumsi. MaterialAssetID
// opsional: kalau diisi, record itu dipaksa jadi satu-satunya sumber.
type ConsumptionLine struct {
	MaterialAssetID types.SnowflakeID `json:"material_asset_id"`
	ItemName        string            `json:"item_name" validate:"required"`
	Brand           string            `json:"brand"`
	Quantity        float64           `json:"quantity" validate:"required"`
	Unit            string            `json:"unit"`
}

// ConsumptionContext membawa konteks satu aksi lapangan: siapa teknisinya,
// untuk pelanggan mana, di lokasi mana, dan nomor dokumen referensinya.
type ConsumptionContext struct {
	CustomerID string `json:"customer_id"`
	Location   string `json:"location"`
	DocNo      string `json:"doc_no"`
	Actor      string `json:"actor"`
}

// planStep adalah satu mutasi terencana terhadap satu record sumber.
type planStep struct {
	record      models.StockRecord
	drainQty    int
	newBalance  int
	newStatus   string
	newHolder   string
	newLocation string
	fromCustody bool
	unit        string
}

// ConsumptionService merencanakan dan mengeksekusi transaksi konsumsi
// multi-sumber. Fase plan murni baca; fase commit satu unit all-or-nothing.
// Semua call ConsumeMaterials diserialisasi lewat write gate (single writer).
type ConsumptionService struct {
	stocks  StockStore
	catalog CatalogResolver
	gate    *WriteGate
	logger  *zap.Logger
}

func NewConsumptionService(stocks StockStore, catalog CatalogResolver, gate *WriteGate, logger *zap.Logger) *ConsumptionService {
	if gate == nil {
		gate = NewWriteGate()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsumptionService{stocks: stocks, catalog: catalog, gate: gate, logger: logger}
}

// ConsumeMaterials memenuhi satu batch kebutuhan material secara atomik.
// Semua baris harus terpenuhi; kalau ada satu saja yang gagal, tidak ada
// mutasi yang diterapkan dan seluruh error per baris dikembalikan sekaligus.
func (s *ConsumptionService) ConsumeMaterials(lines []ConsumptionLine, cctx ConsumptionContext) (bool, []string) {
	s.gate.Lock()
	defer s.gate.Unlock()

	var (
		steps   []planStep
		errs    []string
		claimed = map[types.SnowflakeID]bool{}
	)

	// Fase 1 — plan, tanpa mutasi. Error dikumpulkan per baris, tidak
	// berhenti di kegagalan pertama.
	for _, line := range lines {
		lineSteps, err := s.planLine(line, cctx, claimed)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		for _, step := range lineSteps {
			claimed[step.record.ID] = true
		}
		steps = append(steps, lineSteps...)
	}

	if len(errs) > 0 {
		return false, errs
	}
	if len(steps) == 0 {
		return true, nil
	}

	// Fase 2 — commit: semua mutasi record plus baris ledger dalam satu
	// unit penulisan.
	refNo := cctx.DocNo
	if refNo == "" {
		refNo = uuid.NewString()
	}

	now := time.Now()
	muts := make([]StockMutation, 0, len(steps))
	entries := make([]models.MovementEntry, 0, len(steps))

	for _, step := range steps {
		muts = append(muts, StockMutation{
			RecordID: step.record.ID,
			Balance:  step.newBalance,
			Status:   step.newStatus,
			Holder:   step.newHolder,
			Location: step.newLocation,
		})

		movementType := models.MovementConsumeWarehouse
		if step.fromCustody {
			movementType = models.MovementConsumeCustody
		}
		entries = append(entries, models.MovementEntry{
			ItemName:     step.record.ItemName,
			Brand:        step.record.Brand,
			MovementType: movementType,
			Quantity:     step.drainQty,
			Unit:         step.unit,
			ReferenceNo:  refNo,
			Actor:        cctx.Actor,
			MovedAt:      now,
		})
	}

	if err := s.stocks.Commit(muts, nil, entries); err != nil {
		perr := &PersistenceError{Op: "consumption commit", Err: err}
		s.logger.Error("consumption commit failed", zap.Error(err), zap.String("reference", refNo))
		return false, []string{perr.Error()}
	}

	s.logger.Info("consumption committed",
		zap.String("reference", refNo),
		zap.Int("lines", len(lines)),
		zap.Int("steps", len(steps)))
	return true, nil
}

// planLine menyusun langkah untuk satu baris. Tidak ada state yang diubah;
// claimed hanya dibaca supaya record yang sudah dipakai baris sebelumnya
// tidak terpilih lagi.
func (s *ConsumptionService) planLine(line ConsumptionLine, cctx ConsumptionContext, claimed map[types.SnowflakeID]bool) ([]planStep, error) {
	profile, err := s.catalog.ResolveItem(line.ItemName, line.Brand)
	if err != nil {
		profile = models.DefaultItemProfile()
	}

	need := ceilQuantity(line.Quantity)
	if need == 0 {
		return nil, nil
	}

	var candidates []models.StockRecord
	if line.MaterialAssetID != 0 {
		rec, err := s.stocks.GetByID(line.MaterialAssetID)
		if err != nil {
			return nil, &PersistenceError{Op: "resolve source record", Err: err}
		}
		if rec == nil {
			return nil, &InvalidSourceError{RecordID: line.MaterialAssetID.String(), Reason: "record not found"}
		}
		if claimed[rec.ID] {
			return nil, &InvalidSourceError{RecordID: line.MaterialAssetID.String(), Reason: "already claimed by an earlier line in this batch"}
		}
		if rec.IsTerminal() {
			return nil, &InvalidSourceError{RecordID: line.MaterialAssetID.String(), Reason: "record already consumed"}
		}
		candidates = []models.StockRecord{*rec}
	} else {
		candidates, err = s.collectCandidates(line.ItemName, line.Brand, profile, cctx.Actor, claimed)
		if err != nil {
			return nil, &PersistenceError{Op: "collect source candidates", Err: err}
		}
	}

	if profile.TrackingMode == models.TrackingSerial {
		return s.planSerialLine(line, cctx, profile, candidates, need)
	}
	return s.planBulkLine(line, profile, candidates, need)
}

// collectCandidates: stok yang dipegang teknisi didahulukan sebelum gudang;
// dalam tiap tier, untuk bulk-measurement container terpakai didahulukan
// sebelum yang masih utuh, lalu FIFO berdasar waktu registrasi.
func (s *ConsumptionService) collectCandidates(itemName, brand string, profile models.ItemProfile, actor string, claimed map[types.SnowflakeID]bool) ([]models.StockRecord, error) {
	tierUnit := UnitTypeContainer
	if profile.TrackingMode == models.TrackingBulkMeasure {
		tierUnit = UnitTypeBase
	}

	var custody []models.StockRecord
	if actor != "" {
		held, err := s.stocks.FindByHolder(actor, itemName, brand)
		if err != nil {
			return nil, err
		}
		for _, rec := range held {
			if rec.Status == models.StatusInCustody || rec.Status == models.StatusInUse {
				custody = append(custody, rec)
			}
		}
		sortPool(custody, tierUnit)
	}

	warehouse, err := s.stocks.FindInStorage(itemName, brand)
	if err != nil {
		return nil, err
	}
	sortPool(warehouse, tierUnit)

	candidates := make([]models.StockRecord, 0, len(custody)+len(warehouse))
	for _, rec := range append(custody, warehouse...) {
		if claimed[rec.ID] || rec.IsTerminal() {
			continue
		}
		candidates = append(candidates, rec)
	}
	return candidates, nil
}

func (s *ConsumptionService) planBulkLine(line ConsumptionLine, profile models.ItemProfile, candidates []models.StockRecord, need int) ([]planStep, error) {
	unit := line.Unit
	if unit == "" {
		unit = profile.BaseUnit
	}

	var steps []planStep
	remaining := need

	for _, rec := range candidates {
		if remaining == 0 {
			break
		}
		if rec.CurrentBalance <= 0 {
			continue
		}

		take := rec.CurrentBalance
		if take > remaining {
			take = remaining
		}

		step := planStep{
			record:      rec,
			drainQty:    take,
			newBalance:  rec.CurrentBalance - take,
			newStatus:   rec.Status,
			newHolder:   rec.HolderIdentity,
			newLocation: rec.Location,
			fromCustody: rec.Status == models.StatusInCustody || rec.Status == models.StatusInUse,
			unit:        unit,
		}
		if step.newBalance == 0 {
			// Record bulk yang habis menjadi terminal.
			step.newStatus = models.StatusConsumed
		}
		steps = append(steps, step)
		remaining -= take
	}

	if remaining > 0 {
		// Baris gagal tidak menyisakan plan parsial.
		return nil, &ShortageError{ItemName: displayName(line.ItemName, line.Brand), Unit: unit, Deficit: remaining}
	}
	return steps, nil
}

func (s *ConsumptionService) planSerialLine(line ConsumptionLine, cctx ConsumptionContext, profile models.ItemProfile, candidates []models.StockRecord, need int) ([]planStep, error) {
	unit := line.Unit
	if unit == "" {
		unit = profile.ContainerUnit
	}

	holder := cctx.CustomerID
	if holder == "" {
		holder = cctx.Actor
	}

	var steps []planStep
	for _, rec := range candidates {
		if len(steps) == need {
			break
		}
		steps = append(steps, planStep{
			record:      rec,
			drainQty:    1,
			newBalance:  rec.CurrentBalance,
			newStatus:   models.StatusInUse,
			newHolder:   holder,
			newLocation: cctx.Location,
			fromCustody: rec.Status == models.StatusInCustody || rec.Status == models.StatusInUse,
			unit:        unit,
		})
	}

	if len(steps) < need {
		return nil, &ShortageError{ItemName: displayName(line.ItemName, line.Brand), Unit: unit, Deficit: need - len(steps)}
	}
	return steps, nil
}
