package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Name      string  `gorm:"size:200;not null"`
	Phone     *string `gorm:"size:50"`
	Email     *string `gorm:"size:100"`
	IsActive  bool    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Purchase struct {
	ID         string          `gorm:"primaryKey;size:36"`
	Code       string          `gorm:"size:50;not null;index"`
	SupplierID string          `gorm:"size:36;index;not null"`
	Supplier   Supplier        `gorm:"foreignKey:SupplierID"`
	Date       time.Time       `gorm:"index;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status     PurchaseStatus  `gorm:"size:20;not null"`
	Notes      *string         `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type PurchaseItem struct {
	ID         string          `gorm:"primaryKey;size:36"`
	PurchaseID string          `gorm:"size:36;index;not null"`
	Purchase   Purchase        `gorm:"foreignKey:PurchaseID"`
	MaterialID string          `gorm:"size:36;index;not null"`
	Material   Material        `gorm:"foreignKey:MaterialID"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Waste: malzeme zayiatı
type Waste struct {
	ID         string          `gorm:"primaryKey;size:36"`
	Date       time.Time       `gorm:"index;not null"`
	MaterialID string          `gorm:"size:36;index;not null"`
	Material   Material        `gorm:"foreignKey:MaterialID"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason     *string         `gorm:"size:500"`
	Cost       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
