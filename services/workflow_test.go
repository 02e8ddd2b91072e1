package services

import (
	"testing"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProceedToCheckoutRequiresCustomer(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.Selection.ServiceIDs = []uuid.UUID{uuid.New()}

	require.ErrorIs(t, flow.ProceedToCheckout(), ErrNoCustomer)
	require.Equal(t, StageServiceSelection, flow.Stage)
}

func TestProceedToCheckoutRequiresSelection(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.SelectCustomer(uuid.New())

	require.ErrorIs(t, flow.ProceedToCheckout(), ErrEmptySelection)
	require.Equal(t, StageServiceSelection, flow.Stage)
}

func TestProceedToCheckoutRequiresStylistWhenEnforced(t *testing.T) {
	svcID := uuid.New()
	pkgID := uuid.New()

	flow := NewCheckoutFlow(true)
	flow.SelectCustomer(uuid.New())
	flow.Selection.ServiceIDs = []uuid.UUID{svcID}
	flow.Selection.PackageIDs = []uuid.UUID{pkgID}

	require.ErrorIs(t, flow.ProceedToCheckout(), ErrMissingStylist)
	require.Equal(t, StageServiceSelection, flow.Stage)

	flow.AssignStylist(svcID, uuid.New())
	require.ErrorIs(t, flow.ProceedToCheckout(), ErrMissingStylist)

	flow.AssignStylist(pkgID, uuid.New())
	require.NoError(t, flow.ProceedToCheckout())
	require.Equal(t, StageCheckout, flow.Stage)
}

func TestProceedToCheckoutWithoutStylistEnforcement(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.SelectCustomer(uuid.New())
	flow.Selection.ServiceIDs = []uuid.UUID{uuid.New()}

	require.NoError(t, flow.ProceedToCheckout())
	require.Equal(t, StageCheckout, flow.Stage)
}

func TestAutoAdvance(t *testing.T) {
	flow := NewCheckoutFlow(false)

	require.False(t, flow.AutoAdvance())

	flow.SelectCustomer(uuid.New())
	require.False(t, flow.AutoAdvance())

	flow.Selection.ServiceIDs = []uuid.UUID{uuid.New()}
	require.True(t, flow.AutoAdvance())
	require.Equal(t, StageCheckout, flow.Stage)

	// already past service selection
	require.False(t, flow.AutoAdvance())
}

func TestCompleteCheckoutOnlyFromCheckout(t *testing.T) {
	flow := NewCheckoutFlow(false)

	require.ErrorIs(t, flow.CompleteCheckout(uuid.New()), ErrNotInCheckout)
	require.Equal(t, StageServiceSelection, flow.Stage)
}

func TestCompleteCheckoutRejectsUnsavedAppointment(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.SelectCustomer(uuid.New())
	flow.Selection.ServiceIDs = []uuid.UUID{uuid.New()}
	require.NoError(t, flow.ProceedToCheckout())

	require.ErrorIs(t, flow.CompleteCheckout(uuid.Nil), ErrNotPersisted)
	require.Equal(t, StageCheckout, flow.Stage)
	require.Nil(t, flow.AppointmentID)
}

func TestCompleteCheckoutAdvancesToSummary(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.SelectCustomer(uuid.New())
	flow.Selection.ServiceIDs = []uuid.UUID{uuid.New()}
	require.NoError(t, flow.ProceedToCheckout())

	apptID := uuid.New()
	require.NoError(t, flow.CompleteCheckout(apptID))
	require.Equal(t, StageSummary, flow.Stage)
	require.Equal(t, apptID, *flow.AppointmentID)
}

func TestBackReturnsToSelectionWithoutValidation(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.SelectCustomer(uuid.New())
	flow.Selection.ServiceIDs = []uuid.UUID{uuid.New()}
	require.NoError(t, flow.ProceedToCheckout())

	flow.Back()
	require.Equal(t, StageServiceSelection, flow.Stage)
	// selection and customer survive the back step
	require.NotNil(t, flow.CustomerID)
	require.Len(t, flow.Selection.ServiceIDs, 1)
}

func TestBackIsNoOpOutsideCheckout(t *testing.T) {
	flow := NewCheckoutFlow(false)
	flow.Back()
	require.Equal(t, StageServiceSelection, flow.Stage)
}

func TestResetClearsSessionKeepsEnforcement(t *testing.T) {
	flow := NewCheckoutFlow(true)
	flow.SelectCustomer(uuid.New())
	svcID := uuid.New()
	flow.Selection.ServiceIDs = []uuid.UUID{svcID}
	flow.AssignStylist(svcID, uuid.New())
	flow.DiscountType = models.DiscountPercentage
	flow.DiscountValue = 10
	flow.Notes = "walk-in"
	require.NoError(t, flow.ProceedToCheckout())

	flow.Reset()
	require.Equal(t, StageServiceSelection, flow.Stage)
	require.Nil(t, flow.CustomerID)
	require.True(t, flow.Selection.IsEmpty())
	require.Empty(t, flow.StylistAssignments)
	require.Equal(t, models.DiscountNone, flow.DiscountType)
	require.Zero(t, flow.DiscountValue)
	require.Empty(t, flow.Notes)
	require.True(t, flow.RequireStylist)
}
