package services

import (
	"sync"

	"fiber-inventory/models"
	"fiber-inventory/types"
)

// StockMutation adalah satu perubahan final terhadap satu record, hasil
// planning. Semua field nilai akhir, bukan delta.
type StockMutation struct {
	RecordID types.SnowflakeID
	Balance  int
	Status   string
	Holder   string
	Location string
}

// StockStore adalah kontrak penyimpanan record stok. Implementasi produksi
// repositories.StockRepository (GORM); test memakai double in-memory.
// Commit harus atomik: semua mutasi, record baru, dan baris ledger tertulis
// bersama atau tidak sama sekali.
type StockStore interface {
	GetByID(id types.SnowflakeID) (*models.StockRecord, error)
	FindByIDs(ids []types.SnowflakeID) ([]models.StockRecord, error)
	FindInStorage(itemName, brand string) ([]models.StockRecord, error)
	FindByHolder(holder, itemName, brand string) ([]models.StockRecord, error)
	Commit(muts []StockMutation, newRecords []*models.StockRecord, entries []models.MovementEntry) error
}

// LedgerStore adalah kontrak penyimpanan movement ledger.
type LedgerStore interface {
	Insert(entry *models.MovementEntry) error
	FindByItemAsc(itemName, brand string) ([]models.MovementEntry, error)
	FindByItemDesc(itemName, brand string) ([]models.MovementEntry, error)
	SaveAll(entries []models.MovementEntry) error
}

// DemandSource menyediakan baris demand dari dokumen non-terminal.
type DemandSource interface {
	ListOpenDemandLines() ([]models.DemandLine, error)
}

// CatalogResolver me-resolve profil item dari master catalog. Saat miss,
// implementasi mengembalikan default serial plus *CatalogResolutionError.
type CatalogResolver interface {
	ResolveItem(itemName, brand string) (models.ItemProfile, error)
}

// WriteGate menserialisasi semua operasi yang memutasi stok. Model
// single-writer: satu mutasi berjalan sampai selesai sebelum yang lain mulai,
// sehingga fase plan selalu membaca state yang konsisten dengan commit-nya.
type WriteGate struct {
	mu sync.Mutex
}

func NewWriteGate() *WriteGate {
	return &WriteGate{}
}

func (g *WriteGate) Lock() {
	g.mu.Lock()
}

func (g *WriteGate) Unlock() {
	g.mu.Unlock()
}
