package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupRecord: arşive yazılmış bir sistem yedeği
type BackupRecord struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	FileKey   string `gorm:"size:500;not null" json:"file_key"`
	Storage   string `gorm:"size:20;not null" json:"storage"` // local, s3
	SizeBytes int64  `json:"size_bytes"`
	// Koleksiyon bazında satır sayıları (JSON)
	Counts    string    `gorm:"type:text" json:"counts"`
	CreatedBy *string   `gorm:"size:36" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *BackupRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
