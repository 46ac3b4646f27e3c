package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // CGO gerektirmeyen SQLite sürücüsü
)

// Open yapılandırmadaki sürücüye göre bağlantı açar ve migration çalıştırır.
// Dönen *gorm.DB composition root'a aittir; paketler global bağlantı tutmaz.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DatabaseDriver {
	case "sqlite":
		db, err = OpenSQLite(cfg.DatabaseDSN)
	default:
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite geliştirme ve testler için dosya tabanlı SQLite açar.
func OpenSQLite(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite tek yazıcı destekler
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
		Conn:       sqlDB,
	}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open gorm database: %w", err)
	}
	return db, nil
}

// Models AutoMigrate sırası; bağımlı tablolar referans verdikleri tablolardan sonra gelir.
func Models() []any {
	return []any{
		// Kimlik ve sistem ayarları
		&models.Branch{},
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.RolePermission{},
		&models.Session{},
		&models.Invite{},
		&models.BrandingSetting{},
		&models.SystemSetting{},
		&models.BackupRecord{},
		&models.AuditLog{},

		// Operasyonel veri
		&models.Category{},
		&models.Material{},
		&models.Product{},
		&models.RecipeItem{},
		&models.Supplier{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.Waste{},
		&models.Zone{},
		&models.TaxRate{},
		&models.Driver{},
		&models.DiningTable{},
		&models.Order{},
		&models.OrderItem{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Expense{},
		&models.Employee{},
		&models.Attendance{},
		&models.ShiftTemplate{},
		&models.ShiftLog{},
		&models.Payroll{},
		&models.Leave{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}

	// Tekil ayar satırı her zaman bulunmalı
	setting := models.SystemSetting{ID: models.SystemSettingID}
	if err := db.FirstOrCreate(&setting, models.SystemSetting{ID: models.SystemSettingID}).Error; err != nil {
		return fmt.Errorf("sistem ayarları oluşturulamadı: %w", err)
	}
	return nil
}

// Close alttaki bağlantı havuzunu kapatır.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
