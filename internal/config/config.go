package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=pos port=5432 sslmode=disable"

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres, sqlite
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigins    string
	LogLevel       string

	// Yedek arşivi: BackupS3Bucket doluysa S3, değilse BackupDir kullanılır
	BackupDir      string
	BackupS3Bucket string
	BackupS3Region string
	BackupS3Prefix string

	// Boşsa AWS varsayılan kimlik zinciri kullanılır
	BackupS3AccessKey string
	BackupS3SecretKey string
	// MinIO gibi S3 uyumlu servisler için
	BackupS3Endpoint  string
}

func Load() *Config {
	// .env yoksa sadece ortam değişkenleri kullanılır
	_ = godotenv.Load()

	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BackupDir:      getEnv("BACKUP_DIR", "./backups"),
		BackupS3Bucket: getEnv("BACKUP_S3_BUCKET", ""),
		BackupS3Region: getEnv("BACKUP_S3_REGION", "eu-central-1"),
		BackupS3Prefix: getEnv("BACKUP_S3_PREFIX", "backups/"),

		BackupS3AccessKey: getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
		BackupS3SecretKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
		BackupS3Endpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
	}
}

// Validate production için zorunlu alanları kontrol eder
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET tanımlanmamış")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET en az 32 karakter olmalıdır")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("desteklenmeyen DATABASE_DRIVER: %s", c.DatabaseDriver)
	}
	if (c.BackupS3AccessKey == "") != (c.BackupS3SecretKey == "") {
		return errors.New("BACKUP_S3_ACCESS_KEY_ID ve BACKUP_S3_SECRET_ACCESS_KEY birlikte tanımlanmalı")
	}
	return nil
}

// Warnings varsayılan değerlerle çalışan ayarları döner
func (c *Config) Warnings() []string {
	var warnings []string
	if c.DatabaseDriver == "postgres" && c.DatabaseDSN == defaultDSN {
		warnings = append(warnings, "DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgini tanımla")
	}
	if c.CORSOrigins == "http://localhost:5173" {
		warnings = append(warnings, "CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için kendi domain'ini tanımla")
	}
	return warnings
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
