package services

import (
	"errors"
	"sync"
	"time"

	"fiber-inventory/models"
	"fiber-inventory/types"

	"golang.org/x/exp/slices"
)

// memStore adalah double in-memory untuk StockStore + LedgerStore. Commit
// atomik: saat failCommit aktif, tidak ada satu pun mutasi yang diterapkan.
type memStore struct {
	mu         sync.RWMutex
	records    map[types.SnowflakeID]*models.StockRecord
	entries    []models.MovementEntry
	nextID     uint
	failCommit bool
}

func newMemStore() *memStore {
	return &memStore{records: map[types.SnowflakeID]*models.StockRecord{}}
}

var (
	_ StockStore  = (*memStore)(nil)
	_ LedgerStore = (*memStore)(nil)
)

func (m *memStore) put(rec models.StockRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := rec
	m.records[rec.ID] = &cp
}

func (m *memStore) snapshot() map[types.SnowflakeID]models.StockRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[types.SnowflakeID]models.StockRecord, len(m.records))
	for id, rec := range m.records {
		out[id] = *rec
	}
	return out
}

func (m *memStore) GetByID(id types.SnowflakeID) (*models.StockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) FindByIDs(ids []types.SnowflakeID) ([]models.StockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.StockRecord
	for _, id := range ids {
		if rec, ok := m.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore) find(match func(*models.StockRecord) bool) []models.StockRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.StockRecord
	for _, rec := range m.records {
		if match(rec) {
			out = append(out, *rec)
		}
	}
	slices.SortStableFunc(out, func(a, b models.StockRecord) int {
		if a.RegisteredAt.Before(b.RegisteredAt) {
			return -1
		}
		if a.RegisteredAt.After(b.RegisteredAt) {
			return 1
		}
		return int(a.ID - b.ID)
	})
	return out
}

func (m *memStore) FindInStorage(itemName, brand string) ([]models.StockRecord, error) {
	return m.find(func(rec *models.StockRecord) bool {
		return rec.ItemName == itemName && rec.Brand == brand && rec.Status == models.StatusInStorage
	}), nil
}

func (m *memStore) FindByHolder(holder, itemName, brand string) ([]models.StockRecord, error) {
	return m.find(func(rec *models.StockRecord) bool {
		return rec.HolderIdentity == holder && rec.ItemName == itemName && rec.Brand == brand
	}), nil
}

func (m *memStore) Commit(muts []StockMutation, newRecords []*models.StockRecord, entries []models.MovementEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCommit {
		return errors.New("simulated storage failure")
	}

	for _, mut := range muts {
		if _, ok := m.records[mut.RecordID]; !ok {
			return errors.New("stock record not found")
		}
	}

	for _, mut := range muts {
		rec := m.records[mut.RecordID]
		rec.CurrentBalance = mut.Balance
		rec.Status = mut.Status
		rec.HolderIdentity = mut.Holder
		rec.Location = mut.Location
	}
	for _, rec := range newRecords {
		cp := *rec
		m.records[rec.ID] = &cp
	}
	for _, entry := range entries {
		m.appendLocked(entry)
	}
	return nil
}

func (m *memStore) appendLocked(entry models.MovementEntry) {
	balance := 0
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].ItemName == entry.ItemName && m.entries[i].Brand == entry.Brand {
			balance = m.entries[i].BalanceAfter
			break
		}
	}
	if models.IsInboundMovement(entry.MovementType) {
		balance += entry.Quantity
	} else {
		balance -= entry.Quantity
		if balance < 0 {
			balance = 0
		}
	}
	entry.BalanceAfter = balance
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, entry)
}

func (m *memStore) Insert(entry *models.MovementEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memStore) byItem(itemName, brand string, desc bool) []models.MovementEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.MovementEntry
	for _, entry := range m.entries {
		if entry.ItemName == itemName && entry.Brand == brand {
			out = append(out, entry)
		}
	}
	slices.SortStableFunc(out, func(a, b models.MovementEntry) int {
		if a.MovedAt.Before(b.MovedAt) {
			return -1
		}
		if a.MovedAt.After(b.MovedAt) {
			return 1
		}
		return int(a.ID) - int(b.ID)
	})
	if desc {
		slices.Reverse(out)
	}
	return out
}

func (m *memStore) FindByItemAsc(itemName, brand string) ([]models.MovementEntry, error) {
	return m.byItem(itemName, brand, false), nil
}

func (m *memStore) FindByItemDesc(itemName, brand string) ([]models.MovementEntry, error) {
	return m.byItem(itemName, brand, true), nil
}

func (m *memStore) SaveAll(entries []models.MovementEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, updated := range entries {
		for i := range m.entries {
			if m.entries[i].ID == updated.ID {
				m.entries[i].BalanceAfter = updated.BalanceAfter
				break
			}
		}
	}
	return nil
}

// memCatalog adalah double untuk CatalogResolver.
type memCatalog struct {
	profiles map[string]models.ItemProfile
}

func newMemCatalog() *memCatalog {
	return &memCatalog{profiles: map[string]models.ItemProfile{
		"Dropcore Cable|FiberHome": {
			TrackingMode:     models.TrackingBulkMeasure,
			ContainerUnit:    "Roll",
			BaseUnit:         "Meter",
			ConversionFactor: 1000,
		},
		"Fast Connector|Generic": {
			TrackingMode:     models.TrackingBulkCount,
			ContainerUnit:    "Pcs",
			BaseUnit:         "Pcs",
			ConversionFactor: 1,
		},
		"ONT Router|ZTE": {
			TrackingMode:     models.TrackingSerial,
			ContainerUnit:    "Unit",
			BaseUnit:         "Unit",
			ConversionFactor: 1,
		},
	}}
}

func (c *memCatalog) ResolveItem(itemName, brand string) (models.ItemProfile, error) {
	if profile, ok := c.profiles[itemName+"|"+brand]; ok {
		return profile, nil
	}
	return models.DefaultItemProfile(), &CatalogResolutionError{ItemName: itemName, Brand: brand}
}

// memDemand adalah double untuk DemandSource.
type memDemand struct {
	lines []models.DemandLine
	err   error
}

func (d *memDemand) ListOpenDemandLines() ([]models.DemandLine, error) {
	return d.lines, d.err
}

// Fixture helpers.

var fixtureBase = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func bulkRecord(id int64, capacity, balance int, age time.Duration) models.StockRecord {
	return models.StockRecord{
		ID:              types.SnowflakeID(id),
		ItemName:        "Dropcore Cable",
		Brand:           "FiberHome",
		TrackingMode:    models.TrackingBulkMeasure,
		Status:          models.StatusInStorage,
		Location:        "GUDANG-01",
		InitialCapacity: capacity,
		CurrentBalance:  balance,
		Unit:            "Meter",
		RegisteredAt:    fixtureBase.Add(age),
	}
}

func serialRecord(id int64, serial string, age time.Duration) models.StockRecord {
	return models.StockRecord{
		ID:           types.SnowflakeID(id),
		ItemName:     "ONT Router",
		Brand:        "ZTE",
		TrackingMode: models.TrackingSerial,
		Status:       models.StatusInStorage,
		Location:     "GUDANG-01",
		SerialNumber: serial,
		Unit:         "Unit",
		RegisteredAt: fixtureBase.Add(age),
	}
}

func newAvailability(store *memStore, demand *memDemand) *AvailabilityService {
	if demand == nil {
		demand = &memDemand{}
	}
	scanner := NewReservationScanner(demand, nil)
	return NewAvailabilityService(store, scanner, newMemCatalog(), nil)
}

func newConsumption(store *memStore) *ConsumptionService {
	return NewConsumptionService(store, newMemCatalog(), NewWriteGate(), nil)
}
