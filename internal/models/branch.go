package models

import "time"

type Branch struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;unique"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"` // Opsiyonel telefon
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BrandingSetting: fiş ve arayüzde görünen işletme bilgileri
type BrandingSetting struct {
	ID           uint   `gorm:"primaryKey"`
	BusinessName string `gorm:"size:200"`
	LogoURL      string `gorm:"size:500"`
	PrimaryColor string `gorm:"size:20"`
	ReceiptNote  string `gorm:"size:500"`
	UpdatedAt    time.Time
}
