package services

import (
	"testing"
	"time"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBestMembershipDiscountEmptySelection(t *testing.T) {
	services, packages := testCatalog()
	memberships := []models.Membership{
		{ID: uuid.New(), Name: "Gold", DiscountType: models.DiscountPercentage, DiscountValue: 20},
	}

	got := BestMembershipDiscount(memberships, Selection{}, services, packages)
	require.Equal(t, 0.0, got.Amount)
	require.Nil(t, got.MembershipID)
}

func TestBestMembershipDiscountMinBillingGate(t *testing.T) {
	services, packages := testCatalog()

	memberships := []models.Membership{
		{
			ID:               uuid.New(),
			Name:             "Gold",
			DiscountType:     models.DiscountPercentage,
			DiscountValue:    20,
			MinBillingAmount: floatPtr(5000),
		},
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[0].ID}}
	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.Equal(t, 0.0, got.Amount)
}

func TestBestMembershipDiscountPercentagePerEligibleLine(t *testing.T) {
	services, packages := testCatalog()

	// Only the Haircut (400) is eligible
	memberships := []models.Membership{
		{
			ID:                 uuid.New(),
			Name:               "Cuts Club",
			DiscountType:       models.DiscountPercentage,
			DiscountValue:      10,
			ApplicableServices: models.UUIDSlice{services[0].ID},
		},
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[0].ID, services[1].ID}}
	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.InDelta(t, 40.0, got.Amount, 1e-6)
	require.Equal(t, "Cuts Club", got.MembershipName)
}

func TestBestMembershipDiscountFixedIsWeightedByPriceShare(t *testing.T) {
	services, packages := testCatalog()

	// Flat 100 off, only the Haircut (400 of a 1000 bill) eligible, so
	// the granted amount is 100 * 400/1000.
	memberships := []models.Membership{
		{
			ID:                 uuid.New(),
			Name:               "Flat Friends",
			DiscountType:       models.DiscountFixed,
			DiscountValue:      100,
			ApplicableServices: models.UUIDSlice{services[0].ID},
		},
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[0].ID, services[1].ID}}
	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.InDelta(t, 40.0, got.Amount, 1e-6)
}

func TestBestMembershipDiscountPackageUsesCustomizedPrice(t *testing.T) {
	services, packages := testCatalog()
	pkg := packages[0]

	memberships := []models.Membership{
		{
			ID:            uuid.New(),
			Name:          "All In",
			DiscountType:  models.DiscountPercentage,
			DiscountValue: 10,
		},
	}

	sel := Selection{
		PackageIDs: []uuid.UUID{pkg.ID},
		CustomizedServices: map[uuid.UUID][]uuid.UUID{
			pkg.ID: {services[2].ID}, // +150 on the 800 base
		},
	}

	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.InDelta(t, 95.0, got.Amount, 1e-6)
}

func TestBestMembershipDiscountRespectsMaxCap(t *testing.T) {
	services, packages := testCatalog()

	memberships := []models.Membership{
		{
			ID:               uuid.New(),
			Name:             "Capped",
			DiscountType:     models.DiscountPercentage,
			DiscountValue:    50,
			MaxDiscountValue: floatPtr(120),
		},
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[0].ID, services[1].ID}}
	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.Equal(t, 120.0, got.Amount)
}

func TestBestMembershipDiscountNeverExceedsBill(t *testing.T) {
	services, packages := testCatalog()

	memberships := []models.Membership{
		{
			ID:            uuid.New(),
			Name:          "Too Generous",
			DiscountType:  models.DiscountFixed,
			DiscountValue: 10000,
		},
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[2].ID}}
	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.Equal(t, 150.0, got.Amount)
}

func TestBestMembershipDiscountPicksGreatest(t *testing.T) {
	services, packages := testCatalog()

	memberships := []models.Membership{
		{ID: uuid.New(), Name: "Small", DiscountType: models.DiscountPercentage, DiscountValue: 5},
		{ID: uuid.New(), Name: "Big", DiscountType: models.DiscountPercentage, DiscountValue: 15},
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[0].ID}}
	got := BestMembershipDiscount(memberships, sel, services, packages)
	require.Equal(t, "Big", got.MembershipName)
	require.InDelta(t, 60.0, got.Amount, 1e-6)
}

func TestBestMembershipDiscountTieBreaksOnSmallestID(t *testing.T) {
	services, packages := testCatalog()

	low := uuid.MustParse("30000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("90000000-0000-0000-0000-000000000001")

	// Same discount either way; the smaller id must win regardless of
	// slice order.
	build := func(first, second uuid.UUID, firstName, secondName string) []models.Membership {
		return []models.Membership{
			{ID: first, Name: firstName, DiscountType: models.DiscountPercentage, DiscountValue: 10},
			{ID: second, Name: secondName, DiscountType: models.DiscountPercentage, DiscountValue: 10},
		}
	}

	sel := Selection{ServiceIDs: []uuid.UUID{services[0].ID}}

	got := BestMembershipDiscount(build(low, high, "Low", "High"), sel, services, packages)
	require.Equal(t, "Low", got.MembershipName)

	got = BestMembershipDiscount(build(high, low, "High", "Low"), sel, services, packages)
	require.Equal(t, "Low", got.MembershipName)
}

func TestActiveMemberships(t *testing.T) {
	now := time.Now()
	expired := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	links := []models.CustomerMembership{
		{
			IsActive:   true,
			ValidFrom:  now.AddDate(0, -2, 0),
			Membership: models.Membership{Name: "Current", IsActive: true},
		},
		{
			IsActive:   true,
			ValidFrom:  now.AddDate(0, -2, 0),
			ValidUntil: &expired,
			Membership: models.Membership{Name: "Expired", IsActive: true},
		},
		{
			IsActive:   true,
			ValidFrom:  future,
			Membership: models.Membership{Name: "NotYet", IsActive: true},
		},
		{
			IsActive:   false,
			ValidFrom:  now.AddDate(0, -2, 0),
			Membership: models.Membership{Name: "Revoked", IsActive: true},
		},
		{
			IsActive:   true,
			ValidFrom:  now.AddDate(0, -2, 0),
			Membership: models.Membership{Name: "PlanRetired", IsActive: false},
		},
	}

	active := ActiveMemberships(links, now)
	require.Len(t, active, 1)
	require.Equal(t, "Current", active[0].Name)
}
