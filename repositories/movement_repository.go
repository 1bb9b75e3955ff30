package repositories

import (
	"fiber-inventory/models"
	"fiber-inventory/services"

	"gorm.io/gorm"
)

type MovementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{db}
}

var _ services.LedgerStore = (*MovementRepository)(nil)

func (r *MovementRepository) Insert(entry *models.MovementEntry) error {
	return r.db.Create(entry).Error
}

func (r *MovementRepository) FindByItemAsc(itemName, brand string) ([]models.MovementEntry, error) {
	var entries []models.MovementEntry
	err := r.db.
		Where("item_name = ? AND brand = ?", itemName, brand).
		Order("moved_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MovementRepository) FindByItemDesc(itemName, brand string) ([]models.MovementEntry, error) {
	var entries []models.MovementEntry
	err := r.db.
		Where("item_name = ? AND brand = ?", itemName, brand).
		Order("moved_at desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveAll menulis ulang BalanceAfter hasil replay dalam satu transaksi.
func (r *MovementRepository) SaveAll(entries []models.MovementEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			err := tx.Model(&models.MovementEntry{}).
				Where("id = ?", entries[i].ID).
				Update("balance_after", entries[i].BalanceAfter).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
