package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaxRate struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:100;not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(6,3);not null"`
	IsDefault bool            `gorm:"not null;default:false"`
	IsActive  bool            `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sale: kesilen fatura
type Sale struct {
	ID           string          `gorm:"primaryKey;size:36"`
	InvoiceNo    string          `gorm:"size:50;not null;index"`
	OrderID      *string         `gorm:"size:36;index"`
	Order        *Order          `gorm:"foreignKey:OrderID"`
	Date         time.Time       `gorm:"index;not null"`
	CustomerName *string         `gorm:"size:200"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status       SaleStatus      `gorm:"size:20;not null"`
	Notes        *string         `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SaleItem struct {
	ID        string   `gorm:"primaryKey;size:36"`
	SaleID    string   `gorm:"size:36;index;not null"`
	Sale      Sale     `gorm:"foreignKey:SaleID"`
	ProductID *string  `gorm:"size:36;index"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	// Ürün adı fatura anındaki haliyle saklanır
	Name       string          `gorm:"size:200;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Expense struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Date      time.Time       `gorm:"index;not null"`
	Title     string          `gorm:"size:200;not null"`
	Vendor    *string         `gorm:"size:200"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes     *string         `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
