package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Zone: teslimat bölgesi
type Zone struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:100;not null"`
	LimitKm   decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	Fee       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MinOrder  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status    ZoneStatus      `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Driver struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Name         string  `gorm:"size:100;not null"`
	Phone        *string `gorm:"size:50"`
	Status       string  `gorm:"size:30;not null"`
	ActiveOrders int     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
