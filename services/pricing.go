// services/pricing.go
package services

import (
	"glowdesk-backend/models"

	"github.com/google/uuid"
)

// Selection is the transient state of one in-progress checkout: the chosen
// services, packages and any services added on top of a customizable
// package's base bundle.
type Selection struct {
	ServiceIDs []uuid.UUID
	PackageIDs []uuid.UUID

	// CustomizedServices holds, per package id, the service ids added
	// beyond the package's base bundle. Ids already bundled in the
	// package are ignored so they never double-count.
	CustomizedServices map[uuid.UUID][]uuid.UUID
}

// IsEmpty reports whether nothing has been selected yet.
func (s Selection) IsEmpty() bool {
	return len(s.ServiceIDs) == 0 && len(s.PackageIDs) == 0
}

// ResolvedPrice returns the price a bundled service contributes inside its
// package: the package-specific override when set, otherwise the service's
// own selling price.
func ResolvedPrice(ps models.PackageService) float64 {
	if ps.PackageSellingPrice != nil {
		return *ps.PackageSellingPrice
	}
	return ps.Service.SellingPrice
}

func findService(services []models.Service, id uuid.UUID) *models.Service {
	for i := range services {
		if services[i].ID == id {
			return &services[i]
		}
	}
	return nil
}

func findPackage(packages []models.Package, id uuid.UUID) *models.Package {
	for i := range packages {
		if packages[i].ID == id {
			return &packages[i]
		}
	}
	return nil
}

func inBaseBundle(pkg *models.Package, serviceID uuid.UUID) bool {
	for _, ps := range pkg.PackageServices {
		if ps.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// addedServices resolves the customized additions for a package, dropping
// unknown ids and ids already in the base bundle.
func addedServices(pkg *models.Package, added []uuid.UUID, services []models.Service) []*models.Service {
	var result []*models.Service
	for _, id := range added {
		if inBaseBundle(pkg, id) {
			continue
		}
		if svc := findService(services, id); svc != nil {
			result = append(result, svc)
		}
	}
	return result
}

// PackagePrice returns a package's full customized price: the base bundle
// price plus the standalone selling price of every added service.
func PackagePrice(pkg *models.Package, added []uuid.UUID, services []models.Service) float64 {
	total := pkg.Price
	for _, svc := range addedServices(pkg, added, services) {
		total += svc.SellingPrice
	}
	return total
}

// TotalPrice sums the selling prices of the selected services and the full
// customized prices of the selected packages. Ids that do not resolve
// against the supplied catalogs are silently skipped.
func TotalPrice(sel Selection, services []models.Service, packages []models.Package) float64 {
	var total float64
	for _, id := range sel.ServiceIDs {
		if svc := findService(services, id); svc != nil {
			total += svc.SellingPrice
		}
	}
	for _, id := range sel.PackageIDs {
		if pkg := findPackage(packages, id); pkg != nil {
			total += PackagePrice(pkg, sel.CustomizedServices[id], services)
		}
	}
	return total
}

// TotalDuration sums service durations the same way TotalPrice sums
// prices; a package contributes its bundled services' durations plus any
// customized additions.
func TotalDuration(sel Selection, services []models.Service, packages []models.Package) int {
	var total int
	for _, id := range sel.ServiceIDs {
		if svc := findService(services, id); svc != nil {
			total += svc.Duration
		}
	}
	for _, id := range sel.PackageIDs {
		pkg := findPackage(packages, id)
		if pkg == nil {
			continue
		}
		for _, ps := range pkg.PackageServices {
			total += ps.Service.Duration
		}
		for _, svc := range addedServices(pkg, sel.CustomizedServices[id], services) {
			total += svc.Duration
		}
	}
	return total
}

// FinalPrice applies a single manual discount to a subtotal. A fixed
// discount never takes the total below zero. Percentage values are not
// clamped to [0,100] here; the input layer constrains the range.
func FinalPrice(totalPrice float64, discountType string, discountValue float64) float64 {
	switch discountType {
	case models.DiscountPercentage:
		return totalPrice * (1 - discountValue/100)
	case models.DiscountFixed:
		result := totalPrice - discountValue
		if result < 0 {
			return 0
		}
		return result
	default:
		return totalPrice
	}
}

// AdjustedPrice redistributes a discounted total back onto one line item
// by its share of the original total, so that summing every adjusted line
// reconstructs the discounted total.
func AdjustedPrice(originalItemPrice, originalTotal, discountedTotal float64) float64 {
	if originalTotal == 0 {
		return originalItemPrice
	}
	return originalItemPrice * (discountedTotal / originalTotal)
}

// AdjustedServicePrices computes every line item's post-discount price for
// receipts: selected services at their selling price, package-bundled
// services at their resolved bundle price and customized additions at
// their standalone price, each scaled by discountedTotal/originalTotal.
func AdjustedServicePrices(sel Selection, services []models.Service, packages []models.Package, discountedTotal float64) map[uuid.UUID]float64 {
	originalTotal := TotalPrice(sel, services, packages)
	adjusted := make(map[uuid.UUID]float64)

	for _, id := range sel.ServiceIDs {
		if svc := findService(services, id); svc != nil {
			adjusted[id] = AdjustedPrice(svc.SellingPrice, originalTotal, discountedTotal)
		}
	}
	for _, id := range sel.PackageIDs {
		pkg := findPackage(packages, id)
		if pkg == nil {
			continue
		}
		for _, ps := range pkg.PackageServices {
			adjusted[ps.ServiceID] = AdjustedPrice(ResolvedPrice(ps), originalTotal, discountedTotal)
		}
		for _, svc := range addedServices(pkg, sel.CustomizedServices[id], services) {
			adjusted[svc.ID] = AdjustedPrice(svc.SellingPrice, originalTotal, discountedTotal)
		}
	}
	return adjusted
}

// CheckoutTotal runs the full aggregate pipeline: subtotal, minus the
// manual discount, minus the membership discount, minus any coupon amount,
// floored at zero, plus tax on the discounted amount.
func CheckoutTotal(subtotal float64, discountType string, discountValue, membershipDiscount, couponDiscount, taxRate float64) float64 {
	total := FinalPrice(subtotal, discountType, discountValue)
	total -= membershipDiscount
	total -= couponDiscount
	if total < 0 {
		total = 0
	}
	return total + total*taxRate/100
}
