// services/workflow.go
package services

import (
	"errors"

	"glowdesk-backend/models"

	"github.com/google/uuid"
)

const (
	StageServiceSelection = "service_selection"
	StageCheckout         = "checkout"
	StageSummary          = "summary"
)

var (
	ErrNoCustomer     = errors.New("select a customer before checkout")
	ErrEmptySelection = errors.New("select at least one service or package")
	ErrMissingStylist = errors.New("every selected item needs an assigned stylist")
	ErrNotInCheckout  = errors.New("checkout has not started")
	ErrNotPersisted   = errors.New("appointment was not saved")
)

// CheckoutFlow is the explicit state of one booking session: a linear
// service-selection -> checkout -> summary flow. Transitions either
// succeed or leave the state untouched and return the guard violation.
type CheckoutFlow struct {
	Stage      string
	CustomerID *uuid.UUID
	Selection  Selection

	// StylistAssignments maps a selected item id to the staff member
	// performing it. Only enforced when RequireStylist is set.
	StylistAssignments map[uuid.UUID]uuid.UUID
	RequireStylist     bool

	DiscountType  string
	DiscountValue float64
	Notes         string

	// AppointmentID is set once checkout completes against a persisted
	// appointment.
	AppointmentID *uuid.UUID
}

func NewCheckoutFlow(requireStylist bool) *CheckoutFlow {
	return &CheckoutFlow{
		Stage:              StageServiceSelection,
		StylistAssignments: make(map[uuid.UUID]uuid.UUID),
		RequireStylist:     requireStylist,
		DiscountType:       models.DiscountNone,
	}
}

// SelectCustomer records the customer for this session.
func (f *CheckoutFlow) SelectCustomer(id uuid.UUID) {
	f.CustomerID = &id
}

// AssignStylist binds a staff member to a selected item.
func (f *CheckoutFlow) AssignStylist(itemID, staffID uuid.UUID) {
	f.StylistAssignments[itemID] = staffID
}

func (f *CheckoutFlow) checkoutGuards() error {
	if f.CustomerID == nil {
		return ErrNoCustomer
	}
	if f.Selection.IsEmpty() {
		return ErrEmptySelection
	}
	if f.RequireStylist {
		for _, id := range f.Selection.ServiceIDs {
			if _, ok := f.StylistAssignments[id]; !ok {
				return ErrMissingStylist
			}
		}
		for _, id := range f.Selection.PackageIDs {
			if _, ok := f.StylistAssignments[id]; !ok {
				return ErrMissingStylist
			}
		}
	}
	return nil
}

// ProceedToCheckout moves from service selection to checkout when a
// customer is chosen and the selection is non-empty (and, when required,
// every item has a stylist). On a guard violation the stage is unchanged.
func (f *CheckoutFlow) ProceedToCheckout() error {
	if f.Stage != StageServiceSelection {
		return nil
	}
	if err := f.checkoutGuards(); err != nil {
		return err
	}
	f.Stage = StageCheckout
	return nil
}

// AutoAdvance proceeds to checkout as soon as the selection becomes
// non-empty, if the guards already hold. It reports whether the stage
// moved.
func (f *CheckoutFlow) AutoAdvance() bool {
	if f.Stage != StageServiceSelection || f.Selection.IsEmpty() {
		return false
	}
	return f.ProceedToCheckout() == nil
}

// CompleteCheckout moves to the summary stage, but only once the
// appointment has actually been persisted. A failed persist keeps the
// flow in checkout.
func (f *CheckoutFlow) CompleteCheckout(appointmentID uuid.UUID) error {
	if f.Stage != StageCheckout {
		return ErrNotInCheckout
	}
	if appointmentID == uuid.Nil {
		return ErrNotPersisted
	}
	f.AppointmentID = &appointmentID
	f.Stage = StageSummary
	return nil
}

// Back returns from checkout to service selection with no validation.
func (f *CheckoutFlow) Back() {
	if f.Stage == StageCheckout {
		f.Stage = StageServiceSelection
	}
}

// Reset clears the whole session back to its initial state, keeping only
// the stylist-requirement setting. Used by "create another" on the
// summary screen.
func (f *CheckoutFlow) Reset() {
	*f = CheckoutFlow{
		Stage:              StageServiceSelection,
		StylistAssignments: make(map[uuid.UUID]uuid.UUID),
		RequireStylist:     f.RequireStylist,
		DiscountType:       models.DiscountNone,
	}
}
