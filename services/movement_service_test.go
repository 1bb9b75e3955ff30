package services

import (
	"testing"
	"time"

	"fiber-inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(movementType string, qty int, at time.Time) *models.MovementEntry {
	return &models.MovementEntry{
		ItemName:     "Dropcore Cable",
		Brand:        "FiberHome",
		MovementType: movementType,
		Quantity:     qty,
		Unit:         "Meter",
		MovedAt:      at,
	}
}

func TestRecordMovementRunningBalance(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	require.NoError(t, svc.RecordMovement(entryAt(models.MovementReceipt, 100, fixtureBase)))
	require.NoError(t, svc.RecordMovement(entryAt(models.MovementConsumeWarehouse, 30, fixtureBase.Add(time.Hour))))

	entries, err := store.FindByItemAsc("Dropcore Cable", "FiberHome")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 100, entries[0].BalanceAfter)
	assert.Equal(t, 70, entries[1].BalanceAfter)
}

func TestRecordMovementOutOfOrderTriggersReplay(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	require.NoError(t, svc.RecordMovement(entryAt(models.MovementReceipt, 100, fixtureBase)))
	require.NoError(t, svc.RecordMovement(entryAt(models.MovementConsumeWarehouse, 40, fixtureBase.Add(2*time.Hour))))

	// Entry menyisip di tengah: seluruh key di-replay urut waktu.
	require.NoError(t, svc.RecordMovement(entryAt(models.MovementReceipt, 50, fixtureBase.Add(time.Hour))))

	entries, err := store.FindByItemAsc("Dropcore Cable", "FiberHome")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 100, entries[0].BalanceAfter)
	assert.Equal(t, 150, entries[1].BalanceAfter)
	assert.Equal(t, 110, entries[2].BalanceAfter)
}

func TestRecordMovementOutboundFloorsAtZero(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	require.NoError(t, svc.RecordMovement(entryAt(models.MovementConsumeWarehouse, 25, fixtureBase)))

	entries, _ := store.FindByItemAsc("Dropcore Cable", "FiberHome")
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].BalanceAfter)
}

func TestRecordMovementNormalizesNegativeQuantity(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	entry := entryAt(models.MovementReceipt, -75, fixtureBase)
	require.NoError(t, svc.RecordMovement(entry))

	assert.Equal(t, 75, entry.Quantity)
	assert.Equal(t, 75, entry.BalanceAfter)
}

func TestRecordMovementRejectsUnknownType(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	err := svc.RecordMovement(entryAt("TELEPORT", 10, fixtureBase))
	require.Error(t, err)

	entries, _ := store.FindByItemAsc("Dropcore Cable", "FiberHome")
	assert.Empty(t, entries)
}

func TestGetStockHistoryNewestFirst(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	require.NoError(t, svc.RecordMovement(entryAt(models.MovementReceipt, 100, fixtureBase)))
	require.NoError(t, svc.RecordMovement(entryAt(models.MovementConsumeWarehouse, 10, fixtureBase.Add(time.Hour))))
	require.NoError(t, svc.RecordMovement(entryAt(models.MovementReturn, 5, fixtureBase.Add(2*time.Hour))))

	history, err := svc.GetStockHistory("Dropcore Cable", "FiberHome")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, models.MovementReturn, history[0].MovementType)
	assert.Equal(t, models.MovementConsumeWarehouse, history[1].MovementType)
	assert.Equal(t, models.MovementReceipt, history[2].MovementType)
}

func TestHistoryKeyedByItemBrandNotRecord(t *testing.T) {
	store := newMemStore()
	svc := NewMovementService(store, nil)

	other := entryAt(models.MovementReceipt, 40, fixtureBase)
	other.Brand = "Generic"
	require.NoError(t, svc.RecordMovement(other))
	require.NoError(t, svc.RecordMovement(entryAt(models.MovementReceipt, 100, fixtureBase.Add(time.Minute))))

	history, err := svc.GetStockHistory("Dropcore Cable", "FiberHome")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 100, history[0].BalanceAfter)
}
