package services

import (
	"testing"

	"glowdesk-backend/models"

	"github.com/stretchr/testify/require"
)

func slab(min float64, max *float64, pct float64) models.CommissionSlab {
	return models.CommissionSlab{MinAmount: min, MaxAmount: max, Percentage: pct}
}

func TestValidateSlabsAcceptsContiguousSchedule(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, nil, 30),
	}
	require.NoError(t, ValidateSlabs(slabs))
}

func TestValidateSlabsAcceptsSingleUnboundedSlab(t *testing.T) {
	require.NoError(t, ValidateSlabs([]models.CommissionSlab{slab(0, nil, 10)}))
}

func TestValidateSlabsRejectsEmpty(t *testing.T) {
	require.ErrorIs(t, ValidateSlabs(nil), ErrNoSlabs)
}

func TestValidateSlabsRejectsGap(t *testing.T) {
	// 999 -> 1001 leaves revenue 1000 with no slab
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1001, nil, 30),
	}
	require.Error(t, ValidateSlabs(slabs))
}

func TestValidateSlabsRejectsOverlap(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(1000), 20),
		slab(1000, nil, 30),
	}
	require.Error(t, ValidateSlabs(slabs))
}

func TestValidateSlabsRejectsPercentageOutOfRange(t *testing.T) {
	require.Error(t, ValidateSlabs([]models.CommissionSlab{slab(0, nil, 120)}))
	require.Error(t, ValidateSlabs([]models.CommissionSlab{slab(0, nil, -5)}))
}

func TestValidateSlabsRejectsUnboundedBeforeLast(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, nil, 20),
		slab(1000, floatPtr(2000), 30),
	}
	require.Error(t, ValidateSlabs(slabs))
}

func TestValidateSlabsRejectsBoundedLast(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, floatPtr(4999), 30),
	}
	require.Error(t, ValidateSlabs(slabs))
}

func TestValidateSlabsRejectsInvertedBounds(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(500, floatPtr(500), 20),
		slab(501, nil, 30),
	}
	require.Error(t, ValidateSlabs(slabs))
}

func TestValidateSlabsSortsBeforeChecking(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(1000, nil, 30),
		slab(0, floatPtr(999), 20),
	}
	require.NoError(t, ValidateSlabs(slabs))
}

func TestAddSlabCapsPreviousTail(t *testing.T) {
	slabs := []models.CommissionSlab{slab(0, nil, 10)}

	slabs = AddSlab(slabs, slab(1000, nil, 20))
	require.NoError(t, ValidateSlabs(slabs))
	require.Len(t, slabs, 2)
	require.Equal(t, 999.0, *slabs[0].MaxAmount)
	require.Nil(t, slabs[1].MaxAmount)

	slabs = AddSlab(slabs, slab(5000, nil, 30))
	require.NoError(t, ValidateSlabs(slabs))
	require.Equal(t, 4999.0, *slabs[1].MaxAmount)
	require.Nil(t, slabs[2].MaxAmount)
}

func TestAddSlabIntoEmptySchedule(t *testing.T) {
	slabs := AddSlab(nil, slab(0, floatPtr(500), 15))
	require.Len(t, slabs, 1)
	require.Nil(t, slabs[0].MaxAmount)
	require.NoError(t, ValidateSlabs(slabs))
}

func TestRemoveSlabKeepsTailUnbounded(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 10),
		slab(1000, floatPtr(4999), 20),
		slab(5000, nil, 30),
	}

	slabs = RemoveSlab(slabs, 2)
	require.Len(t, slabs, 2)
	require.Nil(t, slabs[1].MaxAmount)
	require.NoError(t, ValidateSlabs(slabs))
}

func TestRemoveSlabIgnoresBadIndex(t *testing.T) {
	slabs := []models.CommissionSlab{slab(0, nil, 10)}
	require.Len(t, RemoveSlab(slabs, 5), 1)
	require.Len(t, RemoveSlab(slabs, -1), 1)
}

func TestUpdateSlabKeepsTailUnbounded(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 10),
		slab(1000, nil, 20),
	}

	slabs = UpdateSlab(slabs, 1, slab(1000, floatPtr(5000), 35))
	require.Len(t, slabs, 2)
	require.Nil(t, slabs[1].MaxAmount)
	require.Equal(t, 35.0, slabs[1].Percentage)
	require.NoError(t, ValidateSlabs(slabs))
}

func TestUpdateSlabIgnoresBadIndex(t *testing.T) {
	slabs := []models.CommissionSlab{slab(0, nil, 10)}
	out := UpdateSlab(slabs, 3, slab(0, nil, 50))
	require.Len(t, out, 1)
	require.Equal(t, 10.0, out[0].Percentage)
}

func TestCommissionForRevenueUsesContainingSlab(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, nil, 30),
	}

	// The containing slab's rate applies to the whole revenue, not just
	// the portion above the slab's minimum.
	require.InDelta(t, 100.0, CommissionForRevenue(slabs, 500), 1e-6)
	require.InDelta(t, 199.8, CommissionForRevenue(slabs, 999), 1e-6)
	require.InDelta(t, 300.0, CommissionForRevenue(slabs, 1000), 1e-6)
	require.InDelta(t, 1500.0, CommissionForRevenue(slabs, 5000), 1e-6)
}

func TestCommissionForRevenueFractionalBetweenSlabBounds(t *testing.T) {
	slabs := []models.CommissionSlab{
		slab(0, floatPtr(999), 20),
		slab(1000, floatPtr(4999), 30),
		slab(5000, nil, 40),
	}

	// Adjusted prices produce fractional revenue; a bounded slab owns
	// everything below the next slab's minimum.
	require.InDelta(t, 199.9, CommissionForRevenue(slabs, 999.50), 1e-6)
	require.InDelta(t, 1499.97, CommissionForRevenue(slabs, 4999.90), 1e-6)
	require.InDelta(t, 2000.0, CommissionForRevenue(slabs, 5000), 1e-6)
}

func TestCommissionForRevenueZeroOrNegative(t *testing.T) {
	slabs := []models.CommissionSlab{slab(0, nil, 25)}
	require.Equal(t, 0.0, CommissionForRevenue(slabs, 0))
	require.Equal(t, 0.0, CommissionForRevenue(slabs, -100))
}
