package services

import (
	"fmt"
	"time"

	"fiber-inventory/models"

	"go.uber.org/zap"
)

// MovementService menjaga ledger pergerakan per (item,brand): append-only,
// quantity selalu magnitude positif, arah ditentukan movement type, dan
// BalanceAfter dihitung ulang kalau ada entry yang masuk tidak urut waktu.
type MovementService struct {
	ledger LedgerStore
	logger *zap.Logger
}

func NewMovementService(ledger LedgerStore, logger *zap.Logger) *MovementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MovementService{ledger: ledger, logger: logger}
}

// RecordMovement menambahkan satu entry. Entry yang lebih baru dari entry
// terakhir cukup melanjutkan saldo berjalan; entry yang menyisip ke tengah
// memicu replay seluruh key supaya BalanceAfter konsisten.
func (s *MovementService) RecordMovement(entry *models.MovementEntry) error {
	if entry == nil {
		return fmt.Errorf("movement entry is required")
	}
	if entry.ItemName == "" {
		return fmt.Errorf("movement entry requires item name")
	}
	if !models.IsKnownMovement(entry.MovementType) {
		return fmt.Errorf("unknown movement type %q", entry.MovementType)
	}
	if entry.Quantity < 0 {
		entry.Quantity = -entry.Quantity
	}
	if entry.MovedAt.IsZero() {
		entry.MovedAt = time.Now()
	}

	existing, err := s.ledger.FindByItemAsc(entry.ItemName, entry.Brand)
	if err != nil {
		return &PersistenceError{Op: "record movement", Err: err}
	}

	inOrder := len(existing) == 0 || !entry.MovedAt.Before(existing[len(existing)-1].MovedAt)
	if inOrder {
		last := 0
		if len(existing) > 0 {
			last = existing[len(existing)-1].BalanceAfter
		}
		entry.BalanceAfter = applyMovement(last, entry.MovementType, entry.Quantity)
		if err := s.ledger.Insert(entry); err != nil {
			return &PersistenceError{Op: "record movement", Err: err}
		}
		return nil
	}

	// Out-of-order insert: simpan dulu, lalu replay seluruh key urut waktu.
	if err := s.ledger.Insert(entry); err != nil {
		return &PersistenceError{Op: "record movement", Err: err}
	}
	if err := s.replay(entry.ItemName, entry.Brand); err != nil {
		return err
	}

	s.logger.Info("movement ledger replayed after out-of-order insert",
		zap.String("item", entry.ItemName), zap.String("brand", entry.Brand))
	return nil
}

// GetStockHistory mengembalikan ledger satu (item,brand), terbaru lebih dulu.
func (s *MovementService) GetStockHistory(itemName, brand string) ([]models.MovementEntry, error) {
	entries, err := s.ledger.FindByItemDesc(itemName, brand)
	if err != nil {
		return nil, &PersistenceError{Op: "get stock history", Err: err}
	}
	return entries, nil
}

func (s *MovementService) replay(itemName, brand string) error {
	entries, err := s.ledger.FindByItemAsc(itemName, brand)
	if err != nil {
		return &PersistenceError{Op: "ledger replay", Err: err}
	}

	balance := 0
	for i := range entries {
		balance = applyMovement(balance, entries[i].MovementType, entries[i].Quantity)
		entries[i].BalanceAfter = balance
	}

	if err := s.ledger.SaveAll(entries); err != nil {
		return &PersistenceError{Op: "ledger replay", Err: err}
	}
	return nil
}

// applyMovement: inbound menambah, outbound mengurangi dengan lantai nol.
func applyMovement(balance int, movementType string, qty int) int {
	if models.IsInboundMovement(movementType) {
		return balance + qty
	}
	balance -= qty
	if balance < 0 {
		balance = 0
	}
	return balance
}
