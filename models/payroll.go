package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PayPeriodOpen   = "open"
	PayPeriodClosed = "closed"

	PayRunDraft     = "draft"
	PayRunFinalized = "finalized"
)

type PayPeriod struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);default:'open'"`

	PayRuns []PayRun `gorm:"foreignKey:PayPeriodID"`

	gorm.Model
}

func (p *PayPeriod) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type PayRun struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	PayPeriodID uuid.UUID `gorm:"type:uuid;index;not null"`

	Status          string  `gorm:"type:varchar(20);default:'draft'"`
	TotalRevenue    float64 `gorm:"type:decimal(10,2);default:0.0"`
	TotalCommission float64 `gorm:"type:decimal(10,2);default:0.0"`
	TotalNetPay     float64 `gorm:"type:decimal(10,2);default:0.0"`

	Items []PayRunItem `gorm:"foreignKey:PayRunID"`

	gorm.Model
}

func (p *PayRun) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// PayRunItem is one stylist's line in a pay run.
type PayRunItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	PayRunID uuid.UUID `gorm:"type:uuid;index;not null"`
	StaffID  uuid.UUID `gorm:"type:uuid;index;not null"`

	StaffName        string  `gorm:"not null"`
	Revenue          float64 `gorm:"type:decimal(10,2);default:0.0"`
	CommissionAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Adjustment       float64 `gorm:"type:decimal(10,2);default:0.0"`
	AdjustmentNote   string
	NetPay           float64 `gorm:"type:decimal(10,2);default:0.0"`
}

func (p *PayRunItem) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
