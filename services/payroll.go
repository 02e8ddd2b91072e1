// services/payroll.go
package services

import (
	"glowdesk-backend/models"

	"github.com/google/uuid"
)

// StaffRevenue is one stylist's aggregated revenue for a pay period,
// built from the adjusted prices of their completed bookings.
type StaffRevenue struct {
	StaffID   uuid.UUID
	StaffName string
	Total     float64

	// ByService splits the revenue per service id so per-service
	// commission overrides can be applied.
	ByService map[uuid.UUID]float64
}

// BuildPayRunItem computes one stylist's pay run line. Revenue from
// services with a commission override is paid at the override rate; the
// remaining revenue goes through the tiered slab schedule.
func BuildPayRunItem(rev StaffRevenue, slabs []models.CommissionSlab, overrides map[uuid.UUID]float64) models.PayRunItem {
	var overridden, overrideCommission float64
	for serviceID, amount := range rev.ByService {
		pct, ok := overrides[serviceID]
		if !ok {
			continue
		}
		overridden += amount
		overrideCommission += amount * pct / 100
	}

	commission := overrideCommission + CommissionForRevenue(slabs, rev.Total-overridden)

	return models.PayRunItem{
		StaffID:          rev.StaffID,
		StaffName:        rev.StaffName,
		Revenue:          rev.Total,
		CommissionAmount: commission,
		NetPay:           commission,
	}
}

// ApplyAdjustment records a manual +/- correction on a pay run line and
// recomputes its net pay.
func ApplyAdjustment(item *models.PayRunItem, amount float64, note string) {
	item.Adjustment = amount
	item.AdjustmentNote = note
	item.NetPay = item.CommissionAmount + item.Adjustment
}

// PayRunTotals sums a pay run's lines.
func PayRunTotals(items []models.PayRunItem) (revenue, commission, netPay float64) {
	for _, item := range items {
		revenue += item.Revenue
		commission += item.CommissionAmount
		netPay += item.NetPay
	}
	return
}
