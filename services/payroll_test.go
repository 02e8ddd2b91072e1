package services

import (
	"testing"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildPayRunItemSlabsOnly(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, nil, 30),
	}

	rev := StaffRevenue{
		StaffID:   uuid.New(),
		StaffName: "Priya",
		Total:     2500,
	}

	item := BuildPayRunItem(rev, slabs, nil)
	require.Equal(t, 2500.0, item.Revenue)
	require.InDelta(t, 750.0, item.CommissionAmount, 1e-6)
	require.Equal(t, item.CommissionAmount, item.NetPay)
	require.Equal(t, "Priya", item.StaffName)
}

func TestBuildPayRunItemSplitsOverriddenRevenue(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, nil, 30),
	}

	coloringID := uuid.New()
	haircutID := uuid.New()

	rev := StaffRevenue{
		StaffID:   uuid.New(),
		StaffName: "Priya",
		Total:     2500,
		ByService: map[uuid.UUID]float64{
			coloringID: 2000,
			haircutID:  500,
		},
	}

	// Coloring pays a flat 40%; the remaining 500 of revenue falls into
	// the first slab at 20%.
	overrides := map[uuid.UUID]float64{coloringID: 40}

	item := BuildPayRunItem(rev, slabs, overrides)
	require.InDelta(t, 900.0, item.CommissionAmount, 1e-6)
	require.Equal(t, 2500.0, item.Revenue)
}

func TestBuildPayRunItemAllRevenueOverridden(t *testing.T) {
	slabs := []models.CommissionSlab{slab(0, nil, 30)}

	svcID := uuid.New()
	rev := StaffRevenue{
		StaffID: uuid.New(),
		Total:   1000,
		ByService: map[uuid.UUID]float64{
			svcID: 1000,
		},
	}

	item := BuildPayRunItem(rev, slabs, map[uuid.UUID]float64{svcID: 15})
	require.InDelta(t, 150.0, item.CommissionAmount, 1e-6)
}

func TestBuildPayRunItemFractionalRevenueAtSlabBoundary(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, nil, 30),
	}

	rev := StaffRevenue{
		StaffID: uuid.New(),
		Total:   999.50,
	}

	item := BuildPayRunItem(rev, slabs, nil)
	require.InDelta(t, 199.9, item.CommissionAmount, 1e-6)
	require.InDelta(t, 199.9, item.NetPay, 1e-6)
}

func TestBuildPayRunItemZeroRevenue(t *testing.T) {
	slabs := []models.CommissionSlab{slab(0, nil, 25)}

	item := BuildPayRunItem(StaffRevenue{StaffID: uuid.New()}, slabs, nil)
	require.Equal(t, 0.0, item.CommissionAmount)
	require.Equal(t, 0.0, item.NetPay)
}

func TestApplyAdjustment(t *testing.T) {
	item := models.PayRunItem{CommissionAmount: 500, NetPay: 500}

	ApplyAdjustment(&item, 100, "festival bonus")
	require.Equal(t, 600.0, item.NetPay)
	require.Equal(t, "festival bonus", item.AdjustmentNote)

	ApplyAdjustment(&item, -50, "missed shift")
	require.Equal(t, 450.0, item.NetPay)
	require.Equal(t, -50.0, item.Adjustment)
}

func TestPayRunTotals(t *testing.T) {
	items := []models.PayRunItem{
		{Revenue: 2500, CommissionAmount: 750, NetPay: 850},
		{Revenue: 1200, CommissionAmount: 240, NetPay: 240},
	}

	revenue, commission, netPay := PayRunTotals(items)
	require.Equal(t, 3700.0, revenue)
	require.Equal(t, 990.0, commission)
	require.Equal(t, 1090.0, netPay)
}

func TestPayRunTotalsEmpty(t *testing.T) {
	revenue, commission, netPay := PayRunTotals(nil)
	require.Zero(t, revenue)
	require.Zero(t, commission)
	require.Zero(t, netPay)
}
