package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Membership struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`

	DiscountType  string  `gorm:"type:varchar(20);not null"` // percentage or fixed
	DiscountValue float64 `gorm:"type:decimal(10,2);not null"`

	MinBillingAmount *float64 `gorm:"type:decimal(10,2)"`
	MaxDiscountValue *float64 `gorm:"type:decimal(10,2)"`

	// Empty list means the membership applies to everything.
	ApplicableServices UUIDSlice `gorm:"type:jsonb;default:'[]'"`
	ApplicablePackages UUIDSlice `gorm:"type:jsonb;default:'[]'"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (m *Membership) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

type CustomerMembership struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	MembershipID uuid.UUID `gorm:"type:uuid;index;not null"`

	ValidFrom  time.Time
	ValidUntil *time.Time
	IsActive   bool `gorm:"default:true"`

	Membership Membership `gorm:"foreignKey:MembershipID"`

	gorm.Model
}

func (cm *CustomerMembership) BeforeCreate(tx *gorm.DB) (err error) {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	return
}

// UUIDSlice stores a list of ids as a jsonb column.
type UUIDSlice []uuid.UUID

func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(s)
}

func (s *UUIDSlice) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether id is in the slice.
func (s UUIDSlice) Contains(id uuid.UUID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
