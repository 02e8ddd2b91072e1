// services/membership.go
package services

import (
	"strings"
	"time"

	"glowdesk-backend/models"

	"github.com/google/uuid"
)

// MembershipDiscount is the outcome of resolving a customer's memberships
// against the current selection. A zero Amount with a nil MembershipID is
// the no-discount result.
type MembershipDiscount struct {
	Amount         float64
	MembershipID   *uuid.UUID
	MembershipName string
}

// membershipCandidate computes the discount a single membership would grant
// on the current basket. Eligibility lists are wildcards when empty. A
// percentage membership discounts each eligible line by its rate; a fixed
// membership spreads its flat value across eligible lines weighted by each
// line's share of the total bill.
func membershipCandidate(m models.Membership, sel Selection, services []models.Service, packages []models.Package, totalBill float64) float64 {
	var discount float64

	for _, id := range sel.ServiceIDs {
		svc := findService(services, id)
		if svc == nil {
			continue
		}
		if len(m.ApplicableServices) > 0 && !m.ApplicableServices.Contains(id) {
			continue
		}
		switch m.DiscountType {
		case models.DiscountPercentage:
			discount += svc.SellingPrice * m.DiscountValue / 100
		case models.DiscountFixed:
			if totalBill > 0 {
				discount += m.DiscountValue * (svc.SellingPrice / totalBill)
			}
		}
	}

	for _, id := range sel.PackageIDs {
		pkg := findPackage(packages, id)
		if pkg == nil {
			continue
		}
		if len(m.ApplicablePackages) > 0 && !m.ApplicablePackages.Contains(id) {
			continue
		}
		price := PackagePrice(pkg, sel.CustomizedServices[id], services)
		switch m.DiscountType {
		case models.DiscountPercentage:
			discount += price * m.DiscountValue / 100
		case models.DiscountFixed:
			if totalBill > 0 {
				discount += m.DiscountValue * (price / totalBill)
			}
		}
	}

	if m.MaxDiscountValue != nil && discount > *m.MaxDiscountValue {
		discount = *m.MaxDiscountValue
	}
	if discount > totalBill {
		discount = totalBill
	}
	return discount
}

// BestMembershipDiscount resolves the single best-discount membership for
// the current selection. Memberships whose minimum billing amount exceeds
// the pre-discount bill are skipped entirely; memberships never stack.
// Equal candidate discounts break to the smallest membership id so the
// winner does not depend on query order.
func BestMembershipDiscount(memberships []models.Membership, sel Selection, services []models.Service, packages []models.Package) MembershipDiscount {
	best := MembershipDiscount{}
	if sel.IsEmpty() {
		return best
	}

	totalBill := TotalPrice(sel, services, packages)

	for i := range memberships {
		m := memberships[i]
		if m.MinBillingAmount != nil && *m.MinBillingAmount > totalBill {
			continue
		}

		candidate := membershipCandidate(m, sel, services, packages, totalBill)
		if candidate <= 0 {
			continue
		}

		switch {
		case candidate > best.Amount:
		case candidate == best.Amount && best.MembershipID != nil &&
			strings.Compare(m.ID.String(), best.MembershipID.String()) < 0:
		default:
			continue
		}

		id := m.ID
		best = MembershipDiscount{
			Amount:         candidate,
			MembershipID:   &id,
			MembershipName: m.Name,
		}
	}
	return best
}

// ActiveMemberships filters a customer's membership links down to the ones
// valid at the given instant and returns the underlying membership records.
func ActiveMemberships(links []models.CustomerMembership, now time.Time) []models.Membership {
	var result []models.Membership
	for _, link := range links {
		if !link.IsActive || !link.Membership.IsActive {
			continue
		}
		if link.ValidFrom.After(now) {
			continue
		}
		if link.ValidUntil != nil && link.ValidUntil.Before(now) {
			continue
		}
		result = append(result, link.Membership)
	}
	return result
}
