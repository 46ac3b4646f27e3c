package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type DiningTable struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"size:50;not null"`
	Number     int    `gorm:"not null;index"`
	IsOccupied bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Order struct {
	ID           string          `gorm:"primaryKey;size:36"`
	Code         string          `gorm:"size:50;not null;index"`
	Type         OrderType       `gorm:"size:20;not null"`
	Status       OrderStatus     `gorm:"size:30;not null;index"`
	CustomerName *string         `gorm:"size:200"`
	ZoneID       *string         `gorm:"size:36;index"`
	Zone         *Zone           `gorm:"foreignKey:ZoneID"`
	DriverID     *string         `gorm:"size:36;index"`
	Driver       *Driver         `gorm:"foreignKey:DriverID"`
	TableID      *string         `gorm:"size:36;index"`
	Table        *DiningTable    `gorm:"foreignKey:TableID"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Payment      PaymentMethod   `gorm:"size:20;not null"`
	Notes        *string         `gorm:"size:500"`
	// Fiş çıktısının o anki hali (JSON)
	ReceiptSnapshot *datatypes.JSON
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID         string          `gorm:"primaryKey;size:36"`
	OrderID    string          `gorm:"size:36;index;not null"`
	Order      Order           `gorm:"foreignKey:OrderID"`
	ProductID  *string         `gorm:"size:36;index"` // ürün silinmiş olabilir
	Product    *Product        `gorm:"foreignKey:ProductID"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
