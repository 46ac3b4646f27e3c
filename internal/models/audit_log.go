package models

import "time"

type AuditAction string

const (
	AuditActionBackup  AuditAction = "backup"
	AuditActionRestore AuditAction = "restore"
	AuditActionReset   AuditAction = "reset"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi kullanıcı?
	UserID   string `gorm:"size:36;index" json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // Kullanıcı adı (denormalize)

	// Hangi entity? (ör: "system_snapshot", "backup_record")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:36;index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// İşlem detayı (JSON)
	Details string `gorm:"type:text" json:"details"`
}
