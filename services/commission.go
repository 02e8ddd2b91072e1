// services/commission.go
package services

import (
	"errors"
	"fmt"
	"sort"

	"glowdesk-backend/models"
)

var ErrNoSlabs = errors.New("commission template needs at least one slab")

func sortedSlabs(slabs []models.CommissionSlab) []models.CommissionSlab {
	out := make([]models.CommissionSlab, len(slabs))
	copy(out, slabs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinAmount < out[j].MinAmount
	})
	return out
}

// ValidateSlabs checks that a slab sequence exactly tiles [0, inf): sorted
// by minimum amount, each bounded slab ends one unit before the next slab
// starts, and exactly the last slab is unbounded. The first violation found
// is returned; nil means the schedule is valid.
func ValidateSlabs(slabs []models.CommissionSlab) error {
	if len(slabs) == 0 {
		return ErrNoSlabs
	}

	sorted := sortedSlabs(slabs)

	for i, slab := range sorted {
		if slab.Percentage < 0 || slab.Percentage > 100 {
			return fmt.Errorf("slab %d: percentage must be between 0 and 100", i+1)
		}

		last := i == len(sorted)-1
		if slab.MaxAmount == nil {
			if !last {
				return fmt.Errorf("slab %d: only the last slab may be unbounded", i+1)
			}
			continue
		}
		if last {
			return errors.New("the last slab must be unbounded")
		}
		if slab.MinAmount >= *slab.MaxAmount {
			return fmt.Errorf("slab %d: minimum amount must be below maximum amount", i+1)
		}
		if *slab.MaxAmount+1 != sorted[i+1].MinAmount {
			return fmt.Errorf("slab %d: next slab must start at %v", i+1, *slab.MaxAmount+1)
		}
	}
	return nil
}

// AddSlab appends a slab and keeps exactly one trailing slab unbounded:
// the previous last slab is capped one unit below the new slab's minimum
// and the new slab becomes the unbounded tail.
func AddSlab(slabs []models.CommissionSlab, slab models.CommissionSlab) []models.CommissionSlab {
	sorted := sortedSlabs(slabs)
	if len(sorted) > 0 {
		capAmount := slab.MinAmount - 1
		sorted[len(sorted)-1].MaxAmount = &capAmount
	}
	slab.MaxAmount = nil
	return append(sorted, slab)
}

// RemoveSlab drops the slab at index; whatever becomes the last slab is
// forced unbounded so the schedule still tiles to infinity.
func RemoveSlab(slabs []models.CommissionSlab, index int) []models.CommissionSlab {
	sorted := sortedSlabs(slabs)
	if index < 0 || index >= len(sorted) {
		return sorted
	}
	sorted = append(sorted[:index], sorted[index+1:]...)
	if len(sorted) > 0 {
		sorted[len(sorted)-1].MaxAmount = nil
	}
	return sorted
}

// UpdateSlab replaces the slab at index, keeping the trailing slab
// unbounded.
func UpdateSlab(slabs []models.CommissionSlab, index int, slab models.CommissionSlab) []models.CommissionSlab {
	sorted := sortedSlabs(slabs)
	if index < 0 || index >= len(sorted) {
		return sorted
	}
	sorted[index] = slab
	sorted = sortedSlabs(sorted)
	sorted[len(sorted)-1].MaxAmount = nil
	return sorted
}

// CommissionForRevenue returns the commission for a revenue figure: the
// slab containing the revenue determines the rate applied to the whole
// amount. A bounded slab owns the half-open range up to the next slab's
// minimum, so fractional revenue between an integer max and the next min
// (999.50 against [0,999],[1000,inf)) still resolves to a slab.
func CommissionForRevenue(slabs []models.CommissionSlab, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	sorted := sortedSlabs(slabs)
	for i, slab := range sorted {
		if revenue < slab.MinAmount {
			continue
		}
		if i == len(sorted)-1 || revenue < sorted[i+1].MinAmount {
			return revenue * slab.Percentage / 100
		}
	}
	return 0
}
