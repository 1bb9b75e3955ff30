package repositories

import (
	"errors"
	"fmt"

	"fiber-inventory/models"
	"fiber-inventory/services"
	"fiber-inventory/types"

	"gorm.io/gorm"
)

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db}
}

// Pastikan kontrak store engine terpenuhi.
var _ services.StockStore = (*StockRepository)(nil)

func (r *StockRepository) GetByID(id types.SnowflakeID) (*models.StockRecord, error) {
	var rec models.StockRecord
	err := r.db.Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *StockRepository) FindByIDs(ids []types.SnowflakeID) ([]models.StockRecord, error) {
	var records []models.StockRecord
	if len(ids) == 0 {
		return records, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *StockRepository) FindInStorage(itemName, brand string) ([]models.StockRecord, error) {
	var records []models.StockRecord
	err := r.db.
		Where("item_name = ? AND brand = ? AND status = ?", itemName, brand, models.StatusInStorage).
		Order("registered_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *StockRepository) FindByHolder(holder, itemName, brand string) ([]models.StockRecord, error) {
	var records []models.StockRecord
	err := r.db.
		Where("holder_identity = ? AND item_name = ? AND brand = ?", holder, itemName, brand).
		Order("registered_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Commit menulis semua mutasi record, record baru, dan baris ledger dalam
// satu transaksi. Saldo berjalan ledger dihitung dari entry terakhir per
// (item,brand) di dalam transaksi yang sama.
func (r *StockRepository) Commit(muts []services.StockMutation, newRecords []*models.StockRecord, entries []models.MovementEntry) error {
	// Mulai transaksi
	tx := r.db.Begin()
	if tx.Error != nil {
		return errors.New("failed to start transaction")
	}

	// Jika terjadi panic, rollback transaksi
	defer func() {
		if rc := recover(); rc != nil {
			tx.Rollback()
		}
	}()

	for _, mut := range muts {
		result := tx.Model(&models.StockRecord{}).
			Where("id = ?", mut.RecordID).
			Updates(map[string]interface{}{
				"current_balance": mut.Balance,
				"status":          mut.Status,
				"holder_identity": mut.Holder,
				"location":        mut.Location,
			})
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return fmt.Errorf("stock record %s not found", mut.RecordID)
		}
	}

	for _, rec := range newRecords {
		if err := tx.Create(rec).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	for i := range entries {
		entry := entries[i]

		var last models.MovementEntry
		balance := 0
		err := tx.
			Where("item_name = ? AND brand = ?", entry.ItemName, entry.Brand).
			Order("moved_at desc, id desc").
			First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return err
		}
		if err == nil {
			balance = last.BalanceAfter
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

		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	// Commit transaksi
	if err := tx.Commit().Error; err != nil {
		return err
	}

	return nil
}

type StockSummary struct {
	ItemName    string `json:"item_name"`
	Brand       string `json:"brand"`
	Unit        string `json:"unit"`
	Status      string `json:"status"`
	RecordCount int    `json:"record_count"`
	TotalQty    int    `json:"total_qty"`
}

// GetStockSummary: rekap per (item, brand, status) untuk layar monitoring.
func (r *StockRepository) GetStockSummary() ([]StockSummary, error) {

	sqlSummary := `select item_name, brand, unit, status,
	count(*) as record_count, sum(current_balance) as total_qty
	from stock_records
	where deleted_at is null
	group by item_name, brand, unit, status
	order by item_name, brand, status`

	var summaries []StockSummary

	if err := r.db.Raw(sqlSummary).Scan(&summaries).Error; err != nil {
		return nil, err
	}

	return summaries, nil
}

// ListByItem mengembalikan semua record satu (item,brand), terbaru dulu.
func (r *StockRepository) ListByItem(itemName, brand string) ([]models.StockRecord, error) {
	var records []models.StockRecord
	query := r.db.Order("registered_at desc")
	if itemName != "" {
		query = query.Where("item_name = ?", itemName)
	}
	if brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
