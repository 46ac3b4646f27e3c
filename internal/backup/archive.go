package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pos-backend/internal/maintenance"
	"pos-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("yedek kaydı bulunamadı")

// Archive yedek dosyasını store'a, kaydını veritabanına yazar.
type Archive struct {
	db    *gorm.DB
	store Store
}

func NewArchive(db *gorm.DB, store Store) *Archive {
	return &Archive{db: db, store: store}
}

func fileKey(id string, at time.Time) string {
	return fmt.Sprintf("%s/snapshot-%s-%s.json", at.UTC().Format("2006/01"), at.UTC().Format("20060102T150405Z"), id[:8])
}

// Save ham snapshot içeriğini arşivler. createdBy boş olabilir.
func (a *Archive) Save(ctx context.Context, snapshot *maintenance.SystemSnapshot, raw []byte, createdBy string) (*models.BackupRecord, error) {
	counts, err := json.Marshal(snapshot.Data.Counts())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := models.BackupRecord{
		ID:        uuid.NewString(),
		Storage:   a.store.Name(),
		SizeBytes: int64(len(raw)),
		Counts:    string(counts),
		CreatedAt: now,
	}
	record.FileKey = fileKey(record.ID, now)
	if createdBy != "" {
		record.CreatedBy = &createdBy
	}

	if err := a.store.Put(ctx, record.FileKey, raw); err != nil {
		return nil, err
	}
	if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("yedek kaydı oluşturulamadı: %w", err)
	}
	return &record, nil
}

func (a *Archive) List(ctx context.Context, limit int) ([]models.BackupRecord, error) {
	records := []models.BackupRecord{}
	err := a.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// Load kayıtlı bir yedeği okuyup çözer.
func (a *Archive) Load(ctx context.Context, id string) (*maintenance.SystemSnapshot, *models.BackupRecord, error) {
	var record models.BackupRecord
	if err := a.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRecordNotFound
		}
		return nil, nil, err
	}

	raw, err := a.store.Get(ctx, record.FileKey)
	if err != nil {
		return nil, &record, err
	}
	snapshot, err := maintenance.DecodeSnapshot(raw)
	if err != nil {
		return nil, &record, err
	}
	return snapshot, &record, nil
}
