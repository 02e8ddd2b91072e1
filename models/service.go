package models

import (
	"github.com/google/uuid"
)

type Service struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name         string     `gorm:"not null"`
	Description  string
	SellingPrice float64    `gorm:"type:decimal(10,2);not null"`
	Duration     int        // in minutes
	CategoryID   *uuid.UUID `gorm:"type:uuid;index"`
	Category     string     `gorm:"default:'General'"`
	IsActive     bool       `gorm:"default:true"`
}

type Package struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Name           string    `gorm:"not null"`
	Description    string
	Price          float64 `gorm:"type:decimal(10,2);not null"` // base bundle price
	IsCustomizable bool    `gorm:"default:false"`
	IsActive       bool    `gorm:"default:true"`

	PackageServices []PackageService `gorm:"foreignKey:PackageID"`
}

// PackageService links a bundled service to its package. PackageSellingPrice
// overrides the service's standalone price inside the bundle; nil falls back
// to the service's own selling price.
type PackageService struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PackageID           uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID           uuid.UUID `gorm:"type:uuid;index;not null"`
	PackageSellingPrice *float64  `gorm:"type:decimal(10,2)"`

	Service Service `gorm:"foreignKey:ServiceID"`
}
