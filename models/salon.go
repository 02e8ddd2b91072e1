package models

import (
	"github.com/google/uuid"
)

type Salon struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Name             string    `gorm:"not null"`
	Address          string
	WorkingHours     JSONB   `gorm:"type:jsonb;default:'{}'"`
	TaxRate          float64 `gorm:"type:decimal(5,2);default:0.0"` // percent applied at checkout
	SMSConfirmations bool    `gorm:"default:false"`
	SMSReminders     bool    `gorm:"default:false"`

	Users        []User        `gorm:"foreignKey:SalonID"`
	Customers    []Customer    `gorm:"foreignKey:SalonID"`
	Services     []Service     `gorm:"foreignKey:SalonID"`
	Packages     []Package     `gorm:"foreignKey:SalonID"`
	Memberships  []Membership  `gorm:"foreignKey:SalonID"`
	Appointments []Appointment `gorm:"foreignKey:SalonID"`
}
