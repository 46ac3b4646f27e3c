package models

import "time"

// SystemSettingID tekil ayar satırının sabit anahtarı
const SystemSettingID uint = 1

type SystemSetting struct {
	ID uint `gorm:"primaryKey"`
	// nil ise uygulama ilk kurulum sihirbazına döner
	SetupCompletedAt *time.Time
	Currency         string `gorm:"size:10;not null;default:'TRY'"`
	UpdatedAt        time.Time
}
