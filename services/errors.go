package services

import (
	"fmt"
)

// ShortageError: stok fisik tidak cukup untuk satu baris permintaan.
// Recoverable, ditampilkan ke user per baris.
type ShortageError struct {
	ItemName string
	Unit     string
	Deficit  int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("%s: short by %d %s", e.ItemName, e.Deficit, e.Unit)
}

// InvalidSourceError: material_asset_id yang diminta tidak ada, atau sudah
// dipakai baris sebelumnya dalam batch yang sama.
type InvalidSourceError struct {
	RecordID string
	Reason   string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid source record %s: %s", e.RecordID, e.Reason)
}

// CatalogResolutionError: item/brand tidak dikenal katalog. Tidak fatal,
// pemanggil jatuh ke default serial.
type CatalogResolutionError struct {
	ItemName string
	Brand    string
}

func (e *CatalogResolutionError) Error() string {
	return fmt.Sprintf("item %q brand %q not found in catalog", e.ItemName, e.Brand)
}

// PersistenceError: durable write gagal setelah plan dihitung. Fatal untuk
// operasi tersebut, seluruh mutasi dibatalkan.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
