package services

import (
	"fmt"
	"time"

	"fiber-inventory/controllers/idgen"
	"fiber-inventory/models"
	"fiber-inventory/types"

	"go.uber.org/zap"
)

// ReceiptRequest adalah penerimaan stok baru ke gudang.
type ReceiptRequest struct {
	ItemName      string   `json:"item_name" validate:"required"`
	Brand         string   `json:"brand"`
	Quantity      float64  `json:"quantity" validate:"required"`
	Unit          string   `json:"unit"`
	Location      string   `json:"location"`
	SerialNumbers []string `json:"serial_numbers"`
	ReferenceNo   string   `json:"reference_no"`
	Actor         string   `json:"actor"`
}

// StockService menangani mutasi stok di luar konsumsi: penerimaan, transfer
// custody teknisi (termasuk split partial withdrawal), pengembalian, dan
// update status batch. Semuanya lewat write gate yang sama dengan executor.
type StockService struct {
	stocks  StockStore
	catalog CatalogResolver
	gate    *WriteGate
	logger  *zap.Logger
}

func NewStockService(stocks StockStore, catalog CatalogResolver, gate *WriteGate, logger *zap.Logger) *StockService {
	if gate == nil {
		gate = NewWriteGate()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{stocks: stocks, catalog: catalog, gate: gate, logger: logger}
}

// ReceiveStock membuat record InStorage baru plus entry ledger RECEIPT.
// Item serial: satu record per unit. Item bulk: satu record dengan
// capacity = balance = qty.
func (s *StockService) ReceiveStock(req ReceiptRequest) ([]models.StockRecord, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	profile, err := s.catalog.ResolveItem(req.ItemName, req.Brand)
	if err != nil {
		profile = models.DefaultItemProfile()
	}

	qty := ceilQuantity(req.Quantity)
	if qty <= 0 {
		return nil, fmt.Errorf("receipt quantity must be positive")
	}

	now := time.Now()
	var records []*models.StockRecord

	if profile.TrackingMode == models.TrackingSerial {
		for i := 0; i < qty; i++ {
			serial := ""
			if i < len(req.SerialNumbers) {
				serial = req.SerialNumbers[i]
			}
			records = append(records, &models.StockRecord{
				ID:           types.SnowflakeID(idgen.GenerateID()),
				ItemName:     req.ItemName,
				Brand:        req.Brand,
				TrackingMode: profile.TrackingMode,
				Status:       models.StatusInStorage,
				Location:     req.Location,
				SerialNumber: serial,
				Unit:         profile.ContainerUnit,
				RegisteredAt: now,
				CreatedBy:    req.Actor,
			})
		}
	} else {
		records = append(records, &models.StockRecord{
			ID:              types.SnowflakeID(idgen.GenerateID()),
			ItemName:        req.ItemName,
			Brand:           req.Brand,
			TrackingMode:    profile.TrackingMode,
			Status:          models.StatusInStorage,
			Location:        req.Location,
			InitialCapacity: qty,
			CurrentBalance:  qty,
			Unit:            profile.BaseUnit,
			RegisteredAt:    now,
			CreatedBy:       req.Actor,
		})
	}

	entry := models.MovementEntry{
		ItemName:     req.ItemName,
		Brand:        req.Brand,
		MovementType: models.MovementReceipt,
		Quantity:     qty,
		Unit:         firstNonEmpty(req.Unit, profile.BaseUnit),
		ReferenceNo:  req.ReferenceNo,
		Actor:        req.Actor,
		MovedAt:      now,
	}

	if err := s.stocks.Commit(nil, records, []models.MovementEntry{entry}); err != nil {
		return nil, &PersistenceError{Op: "stock receipt", Err: err}
	}

	out := make([]models.StockRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, *rec)
	}
	s.logger.Info("stock received",
		zap.String("item", req.ItemName), zap.String("brand", req.Brand), zap.Int("qty", qty))
	return out, nil
}

// TransferToCustody memindahkan stok gudang ke pegangan teknisi. Penarikan
// sebagian dari record bulk-measurement men-split record: balance parent
// dikurangi, dan child baru dibuat dengan capacity = qty yang ditarik serta
// parent_record_id menunjuk parent. Mengembalikan record yang kini dipegang
// teknisi (child kalau split).
func (s *StockService) TransferToCustody(recordID types.SnowflakeID, qty float64, technician, actor string) (*models.StockRecord, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	if technician == "" {
		return nil, fmt.Errorf("technician identity is required")
	}

	rec, err := s.stocks.GetByID(recordID)
	if err != nil {
		return nil, &PersistenceError{Op: "custody transfer", Err: err}
	}
	if rec == nil {
		return nil, &InvalidSourceError{RecordID: recordID.String(), Reason: "record not found"}
	}
	if rec.IsTerminal() {
		return nil, &InvalidSourceError{RecordID: recordID.String(), Reason: "record already consumed"}
	}
	if rec.Status != models.StatusInStorage {
		return nil, &InvalidSourceError{RecordID: recordID.String(), Reason: "record is not in storage"}
	}

	need := ceilQuantity(qty)
	now := time.Now()

	wholeTransfer := rec.TrackingMode == models.TrackingSerial ||
		need == 0 || need >= rec.CurrentBalance

	entryQty := need
	if rec.TrackingMode == models.TrackingSerial {
		entryQty = 1
	} else if wholeTransfer {
		entryQty = rec.CurrentBalance
	}

	entry := models.MovementEntry{
		ItemName:     rec.ItemName,
		Brand:        rec.Brand,
		MovementType: models.MovementIssue,
		Quantity:     entryQty,
		Unit:         rec.Unit,
		ReferenceNo:  recordID.String(),
		Actor:        actor,
		MovedAt:      now,
	}

	if wholeTransfer {
		mut := StockMutation{
			RecordID: rec.ID,
			Balance:  rec.CurrentBalance,
			Status:   models.StatusInCustody,
			Holder:   technician,
			Location: rec.Location,
		}
		if err := s.stocks.Commit([]StockMutation{mut}, nil, []models.MovementEntry{entry}); err != nil {
			return nil, &PersistenceError{Op: "custody transfer", Err: err}
		}
		moved := *rec
		moved.Status = models.StatusInCustody
		moved.HolderIdentity = technician
		return &moved, nil
	}

	if need > rec.CurrentBalance {
		return nil, &ShortageError{ItemName: displayName(rec.ItemName, rec.Brand), Unit: rec.Unit, Deficit: need - rec.CurrentBalance}
	}

	parentMut := StockMutation{
		RecordID: rec.ID,
		Balance:  rec.CurrentBalance - need,
		Status:   rec.Status,
		Holder:   rec.HolderIdentity,
		Location: rec.Location,
	}

	child := &models.StockRecord{
		ID:              types.SnowflakeID(idgen.GenerateID()),
		ItemName:        rec.ItemName,
		Brand:           rec.Brand,
		TrackingMode:    rec.TrackingMode,
		Status:          models.StatusInCustody,
		HolderIdentity:  technician,
		Location:        rec.Location,
		InitialCapacity: need,
		CurrentBalance:  need,
		Unit:            rec.Unit,
		RegisteredAt:    now,
		ParentRecordID:  rec.ID,
		CreatedBy:       actor,
	}

	if err := s.stocks.Commit([]StockMutation{parentMut}, []*models.StockRecord{child}, []models.MovementEntry{entry}); err != nil {
		return nil, &PersistenceError{Op: "custody transfer split", Err: err}
	}

	s.logger.Info("partial withdrawal split committed",
		zap.String("parent", rec.ID.String()),
		zap.String("child", child.ID.String()),
		zap.Int("withdrawn", need))
	return child, nil
}

// ReturnToStorage mengembalikan record dari pegangan teknisi ke gudang.
func (s *StockService) ReturnToStorage(recordID types.SnowflakeID, location, actor string) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	rec, err := s.stocks.GetByID(recordID)
	if err != nil {
		return &PersistenceError{Op: "return to storage", Err: err}
	}
	if rec == nil {
		return &InvalidSourceError{RecordID: recordID.String(), Reason: "record not found"}
	}
	if rec.IsTerminal() {
		return &InvalidSourceError{RecordID: recordID.String(), Reason: "record already consumed"}
	}
	if rec.Status != models.StatusInCustody && rec.Status != models.StatusAwaitingReturn {
		return &InvalidSourceError{RecordID: recordID.String(), Reason: "record is not held outside storage"}
	}

	if location == "" {
		location = rec.Location
	}

	qty := rec.CurrentBalance
	if rec.TrackingMode == models.TrackingSerial {
		qty = 1
	}

	mut := StockMutation{
		RecordID: rec.ID,
		Balance:  rec.CurrentBalance,
		Status:   models.StatusInStorage,
		Holder:   "",
		Location: location,
	}
	entry := models.MovementEntry{
		ItemName:     rec.ItemName,
		Brand:        rec.Brand,
		MovementType: models.MovementReturn,
		Quantity:     qty,
		Unit:         rec.Unit,
		ReferenceNo:  recordID.String(),
		Actor:        actor,
		MovedAt:      time.Now(),
	}

	if err := s.stocks.Commit([]StockMutation{mut}, nil, []models.MovementEntry{entry}); err != nil {
		return &PersistenceError{Op: "return to storage", Err: err}
	}
	return nil
}

// UpdateStatusBatch mengubah status/holder sekumpulan record dalam satu unit
// penulisan. Record terminal ditolak.
func (s *StockService) UpdateStatusBatch(ids []types.SnowflakeID, status, holder string) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	if len(ids) == 0 {
		return nil
	}
	switch status {
	case models.StatusInStorage, models.StatusInCustody, models.StatusInUse,
		models.StatusDamaged, models.StatusAwaitingReturn:
	default:
		return fmt.Errorf("status %q is not assignable in batch update", status)
	}

	records, err := s.stocks.FindByIDs(ids)
	if err != nil {
		return &PersistenceError{Op: "batch status update", Err: err}
	}
	if len(records) != len(ids) {
		return &InvalidSourceError{RecordID: "batch", Reason: "one or more records not found"}
	}

	muts := make([]StockMutation, 0, len(records))
	for _, rec := range records {
		if rec.IsTerminal() {
			return &InvalidSourceError{RecordID: rec.ID.String(), Reason: "record already consumed"}
		}
		muts = append(muts, StockMutation{
			RecordID: rec.ID,
			Balance:  rec.CurrentBalance,
			Status:   status,
			Holder:   holder,
			Location: rec.Location,
		})
	}

	if err := s.stocks.Commit(muts, nil, nil); err != nil {
		return &PersistenceError{Op: "batch status update", Err: err}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
