package services

import (
	"testing"
	"time"

	"fiber-inventory/models"
	"fiber-inventory/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailabilitySingleFullRoll(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))

	svc := newAvailability(store, nil)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 300, "Meter", "")

	require.True(t, report.IsSufficient)
	assert.False(t, report.IsFragmented)
	assert.Equal(t, 1, report.PhysicalCount)
	assert.Equal(t, 1000, report.TotalContent)
	assert.Equal(t, 1000, report.AvailableContent)
	assert.Equal(t, 1000, report.AvailableSmart)
	assert.Equal(t, UnitTypeBase, report.UnitType)
	assert.Equal(t, []types.SnowflakeID{1}, report.RecommendedSourceIDs)
}

func TestCheckAvailabilityFragmented(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 200, 0))
	store.put(bulkRecord(2, 1000, 150, time.Hour))

	svc := newAvailability(store, nil)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 300, "Meter", "")

	require.True(t, report.IsSufficient)
	assert.True(t, report.IsFragmented)
	assert.Equal(t, 350, report.AvailableContent)
	assert.Equal(t, []types.SnowflakeID{1, 2}, report.RecommendedSourceIDs)
}

func TestCheckAvailabilityOpenedSortsBeforeSealed(t *testing.T) {
	store := newMemStore()
	// Roll utuh lebih tua dari roll yang sudah dibuka.
	store.put(bulkRecord(1, 1000, 1000, 0))
	store.put(bulkRecord(2, 1000, 400, time.Hour))

	svc := newAvailability(store, nil)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 300, "Meter", "")

	require.True(t, report.IsSufficient)
	// Sisa roll terbuka cukup sendirian, jadi dialah rekomendasinya.
	assert.Equal(t, []types.SnowflakeID{2}, report.RecommendedSourceIDs)
}

func TestCheckAvailabilityContainerRequestExcludesOpened(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))
	store.put(bulkRecord(2, 1000, 400, time.Hour))

	svc := newAvailability(store, nil)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 2, "Roll", "")

	// Container terbuka tidak bisa memenuhi permintaan container utuh.
	assert.Equal(t, 1, report.PhysicalCount)
	assert.Equal(t, 1, report.AvailableCount)
	assert.Equal(t, 1, report.AvailableSmart)
	assert.False(t, report.IsSufficient)
	assert.Equal(t, UnitTypeContainer, report.UnitType)
	// TotalContent tetap dihitung dari pool tanpa restriksi.
	assert.Equal(t, 1400, report.TotalContent)
}

func TestCheckAvailabilityReservationReducesSmart(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))

	base := newAvailability(store, nil)
	before := base.CheckAvailability("Dropcore Cable", "FiberHome", 100, "Meter", "")

	demand := &memDemand{lines: []models.DemandLine{{
		DemandNo:        "DM-001",
		ItemName:        "Dropcore Cable",
		Brand:           "FiberHome",
		Quantity:        250,
		Unit:            "Meter",
		AllocationState: models.AllocationStock,
	}}}
	reserved := newAvailability(store, demand)
	after := reserved.CheckAvailability("Dropcore Cable", "FiberHome", 100, "Meter", "")

	assert.Equal(t, before.AvailableSmart-250, after.AvailableSmart)
	assert.Equal(t, 250, after.ReservedContent)
}

func TestCheckAvailabilityContainerReservationSkipsRecords(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))
	store.put(bulkRecord(2, 1000, 1000, time.Hour))

	demand := &memDemand{lines: []models.DemandLine{{
		DemandNo:        "DM-002",
		ItemName:        "Dropcore Cable",
		Brand:           "FiberHome",
		Quantity:        1,
		Unit:            "Roll",
		AllocationState: models.AllocationStock,
	}}}

	svc := newAvailability(store, demand)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 1200, "Meter", "")

	// Satu roll dianggap sudah diklaim reservasi level container.
	assert.Equal(t, 1, report.ReservedCount)
	assert.Equal(t, 1, report.AvailableCount)
	assert.Equal(t, 1000, report.AvailableContent)
	assert.False(t, report.IsSufficient)
}

func TestCheckAvailabilityExcludesOwnDemand(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))

	demand := &memDemand{lines: []models.DemandLine{{
		DemandNo:        "DM-003",
		ItemName:        "Dropcore Cable",
		Brand:           "FiberHome",
		Quantity:        900,
		Unit:            "Meter",
		AllocationState: models.AllocationStock,
	}}}

	svc := newAvailability(store, demand)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 500, "Meter", "DM-003")

	assert.Zero(t, report.ReservedContent)
	assert.True(t, report.IsSufficient)
}

func TestCheckAvailabilityIgnoresUnallocatedLines(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))

	demand := &memDemand{lines: []models.DemandLine{{
		DemandNo:        "DM-004",
		ItemName:        "Dropcore Cable",
		Brand:           "FiberHome",
		Quantity:        900,
		Unit:            "Meter",
		AllocationState: models.AllocationProcurement,
	}}}

	svc := newAvailability(store, demand)
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 500, "Meter", "")

	assert.Zero(t, report.ReservedContent)
	assert.True(t, report.IsSufficient)
}

func TestCheckAvailabilityIdempotent(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 700, 0))
	store.put(bulkRecord(2, 1000, 1000, time.Hour))

	svc := newAvailability(store, nil)
	first := svc.CheckAvailability("Dropcore Cable", "FiberHome", 800, "Meter", "")
	second := svc.CheckAvailability("Dropcore Cable", "FiberHome", 800, "Meter", "")

	assert.Equal(t, first, second)
}

func TestCheckAvailabilityUnknownItemFallsBack(t *testing.T) {
	store := newMemStore()

	svc := newAvailability(store, nil)
	report := svc.CheckAvailability("Mystery Widget", "NoBrand", 1, "", "")

	assert.Equal(t, UnitTypeContainer, report.UnitType)
	assert.Equal(t, "Unit", report.ContainerUnit)
	assert.False(t, report.IsSufficient)
	assert.Zero(t, report.AvailableSmart)
}

func TestCheckAvailabilityCeilsFractionalNeed(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 300, 300, 0))

	svc := newAvailability(store, nil)

	// 299.2 dibulatkan ke atas menjadi 300.
	report := svc.CheckAvailability("Dropcore Cable", "FiberHome", 299.2, "Meter", "")
	assert.True(t, report.IsSufficient)

	report = svc.CheckAvailability("Dropcore Cable", "FiberHome", 300.1, "Meter", "")
	assert.False(t, report.IsSufficient)
}

func TestValidateDemandCollectsAllShortages(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 100, 0))

	svc := newAvailability(store, nil)
	valid, errs := svc.ValidateDemand([]DemandRequirement{
		{ItemName: "Dropcore Cable", Brand: "FiberHome", Quantity: 250, Unit: "Meter"},
		{ItemName: "ONT Router", Brand: "ZTE", Quantity: 2, Unit: "Unit"},
	}, "")

	require.False(t, valid)
	require.Len(t, errs, 2)
	assert.Equal(t, "Dropcore Cable (FiberHome): short by 150 Meter", errs[0])
	assert.Equal(t, "ONT Router (ZTE): short by 2 Unit", errs[1])
}

func TestValidateDemandPassesWhenSufficient(t *testing.T) {
	store := newMemStore()
	store.put(bulkRecord(1, 1000, 1000, 0))
	store.put(serialRecord(2, "ZTE-0001", 0))

	svc := newAvailability(store, nil)
	valid, errs := svc.ValidateDemand([]DemandRequirement{
		{ItemName: "Dropcore Cable", Brand: "FiberHome", Quantity: 400, Unit: "Meter"},
		{ItemName: "ONT Router", Brand: "ZTE", Quantity: 1, Unit: "Unit"},
	}, "")

	assert.True(t, valid)
	assert.Empty(t, errs)
}
