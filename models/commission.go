package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommissionTemplate is a reusable tiered commission schedule. Its slabs
// must exactly tile [0, inf): consecutive slabs sorted by MinAmount satisfy
// max_amount + 1 == next min_amount, and only the last slab is unbounded.
type CommissionTemplate struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`

	Slabs []CommissionSlab `gorm:"foreignKey:TemplateID"`

	gorm.Model
}

func (t *CommissionTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

type CommissionSlab struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TemplateID uuid.UUID `gorm:"type:uuid;index;not null"`

	MinAmount  float64  `gorm:"type:decimal(10,2);not null"`
	MaxAmount  *float64 `gorm:"type:decimal(10,2)"` // nil only on the last slab
	Percentage float64  `gorm:"type:decimal(5,2);not null"`
}

func (s *CommissionSlab) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ServiceCommission overrides the template rate for revenue from a
// specific service.
type ServiceCommission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_salon_service_commission;not null"`

	Percentage float64 `gorm:"type:decimal(5,2);not null"`

	gorm.Model
}

func (sc *ServiceCommission) BeforeCreate(tx *gorm.DB) (err error) {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return
}
