package audit

import (
	"encoding/json"
	"fmt"

	"pos-backend/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Details     any
}

// Entity tipleri
const (
	EntitySystemSnapshot = "system_snapshot"
	EntityBackupRecord   = "backup_record"
	EntitySystemData     = "system_data"
)

// WriteLog verilen bağlantı üzerinden log satırı ekler; db bir transaction olabilir.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	details := "null"
	if opts.Details != nil {
		if b, err := json.Marshal(opts.Details); err == nil {
			details = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		Details:     details,
	}

	if err := db.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}
