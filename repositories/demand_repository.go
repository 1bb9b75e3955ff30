package repositories

import (
	"fiber-inventory/models"
	"fiber-inventory/services"

	"gorm.io/gorm"
)

type DemandRepository struct {
	db *gorm.DB
}

func NewDemandRepository(db *gorm.DB) *DemandRepository {
	return &DemandRepository{db}
}

var _ services.DemandSource = (*DemandRepository)(nil)

// ListOpenDemandLines mengembalikan baris dari dokumen demand non-terminal.
// Dokumen COMPLETED / CANCELLED tidak lagi menahan reservasi.
func (r *DemandRepository) ListOpenDemandLines() ([]models.DemandLine, error) {

	sqlLines := `select a.demand_no, b.item_name, b.brand, b.quantity, b.unit, b.allocation_state
	from demand_headers a
	inner join demand_details b on b.demand_id = a.id
	where a.status not in (?, ?)
	and a.deleted_at is null and b.deleted_at is null`

	var lines []models.DemandLine

	err := r.db.Raw(sqlLines, models.DemandCompleted, models.DemandCancelled).Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}
