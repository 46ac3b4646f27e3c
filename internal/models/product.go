package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material: ham stok kalemi (kg, lt, adet)
type Material struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:100;not null"`
	Unit      string          `gorm:"size:20;not null"`
	Cost      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinStock  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID         string          `gorm:"primaryKey;size:36"`
	Name       string          `gorm:"size:100;not null"`
	CategoryID string          `gorm:"size:36;index;not null"`
	Category   Category        `gorm:"foreignKey:CategoryID"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive   bool            `gorm:"not null"`
	ImageURL   *string         `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecipeItem: bir ürünün reçetesindeki malzeme satırı
type RecipeItem struct {
	ID         string          `gorm:"primaryKey;size:36"`
	ProductID  string          `gorm:"size:36;index;not null"`
	Product    Product         `gorm:"foreignKey:ProductID"`
	MaterialID string          `gorm:"size:36;index;not null"`
	Material   Material        `gorm:"foreignKey:MaterialID"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
