package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountNone       = "none"
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

const (
	BookingItemService = "service"
	BookingItemPackage = "package"
)

// Appointment is one checkout: the customer, every booked item and the
// price breakdown that was computed at checkout time.
type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	AppointmentNumber string    `gorm:"uniqueIndex;not null"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	Status            string    `gorm:"type:varchar(20);default:'scheduled'"`

	Subtotal      float64 `gorm:"type:decimal(10,2);not null"`
	DiscountType  string  `gorm:"type:varchar(20);default:'none'"`
	DiscountValue float64 `gorm:"type:decimal(10,2);default:0.0"`

	MembershipDiscount float64    `gorm:"type:decimal(10,2);default:0.0"`
	MembershipID       *uuid.UUID `gorm:"type:uuid;index"`

	CouponDiscount float64 `gorm:"type:decimal(10,2);default:0.0"`
	TaxRate        float64 `gorm:"type:decimal(5,2);default:0.0"`
	Total          float64 `gorm:"type:decimal(10,2);not null"`

	PaymentStatus string  `gorm:"type:varchar(20);default:'unpaid'"`
	PaidAmount    float64 `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod string
	Notes         string

	Bookings []Booking `gorm:"foreignKey:AppointmentID"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Booking is one line of an appointment: a single service or package with
// the stylist assigned to it and its share of the discounted total.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`

	ItemKind string    `gorm:"type:varchar(20);not null"` // service or package
	ItemID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemName string    `gorm:"not null"`

	StaffID *uuid.UUID `gorm:"type:uuid;index"`

	UnitPrice     float64 `gorm:"type:decimal(10,2);not null"`
	AdjustedPrice float64 `gorm:"type:decimal(10,2);not null"`
	Duration      int     // in minutes
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
