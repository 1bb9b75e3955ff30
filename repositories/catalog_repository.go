package repositories

import (
	"strings"
	"sync"

	"fiber-inventory/models"
	"fiber-inventory/services"

	"gorm.io/gorm"
)

// CatalogRepository me-resolve profil item dari master catalog. Seluruh
// katalog dimuat sekali ke lookup table datar ber-key (item,brand), bukan
// menelusuri hirarki kategori di tiap call.
type CatalogRepository struct {
	db *gorm.DB

	mu       sync.RWMutex
	profiles map[string]models.ItemProfile
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ services.CatalogResolver = (*CatalogRepository)(nil)

func catalogKey(itemName, brand string) string {
	return strings.ToLower(itemName) + "|" + strings.ToLower(brand)
}

// Reload membangun ulang lookup table dari database. Dipanggil saat startup
// dan setiap kali modul katalog selesai mengubah master item.
func (r *CatalogRepository) Reload() error {
	var items []models.CatalogItem
	if err := r.db.Find(&items).Error; err != nil {
		return err
	}

	profiles := make(map[string]models.ItemProfile, len(items))
	for _, item := range items {
		profile := models.ItemProfile{
			TrackingMode:     item.TrackingMode,
			ContainerUnit:    item.ContainerUnit,
			BaseUnit:         item.BaseUnit,
			ConversionFactor: item.ConversionFactor,
		}
		if profile.ContainerUnit == "" {
			profile.ContainerUnit = "Unit"
		}
		if profile.BaseUnit == "" {
			profile.BaseUnit = profile.ContainerUnit
		}
		if profile.ConversionFactor <= 0 {
			profile.ConversionFactor = 1
		}
		profiles[catalogKey(item.ItemName, item.Brand)] = profile
	}

	r.mu.Lock()
	r.profiles = profiles
	r.mu.Unlock()
	return nil
}

// ResolveItem mengembalikan profil item. Miss bukan kondisi fatal: default
// serial permisif dikembalikan bersama *CatalogResolutionError supaya
// pemanggil bisa memilih jatuh ke fallback.
func (r *CatalogRepository) ResolveItem(itemName, brand string) (models.ItemProfile, error) {
	r.mu.RLock()
	profiles := r.profiles
	r.mu.RUnlock()

	if profiles == nil {
		if err := r.Reload(); err != nil {
			return models.DefaultItemProfile(), err
		}
		r.mu.RLock()
		profiles = r.profiles
		r.mu.RUnlock()
	}

	if profile, ok := profiles[catalogKey(itemName, brand)]; ok {
		return profile, nil
	}
	return models.DefaultItemProfile(), &services.CatalogResolutionError{ItemName: itemName, Brand: brand}
}
