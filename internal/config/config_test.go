package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("BACKUP_DIR", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "./backups", cfg.BackupDir)
	assert.Empty(t, cfg.BackupS3Bucket)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DatabaseDriver: "postgres"}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())

	cfg.DatabaseDriver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestWarnings(t *testing.T) {
	cfg := &Config{DatabaseDriver: "postgres", DatabaseDSN: defaultDSN, CORSOrigins: "http://localhost:5173"}
	assert.Len(t, cfg.Warnings(), 2)

	cfg = &Config{DatabaseDriver: "sqlite", DatabaseDSN: "pos.db", CORSOrigins: "https://pos.example.com"}
	assert.Empty(t, cfg.Warnings())
}

func TestValidateS3Credentials(t *testing.T) {
	cfg := &Config{DatabaseDriver: "sqlite", JWTSecret: "0123456789abcdef0123456789abcdef"}
	cfg.BackupS3AccessKey = "AKIA"
	assert.Error(t, cfg.Validate())

	cfg.BackupS3SecretKey = "secret"
	assert.NoError(t, cfg.Validate())
}
