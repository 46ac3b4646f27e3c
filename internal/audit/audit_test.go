package audit

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestWriteLog(t *testing.T) {
	db := setupTestDB(t)

	err := WriteLog(db, LogOptions{
		UserID:      "u-1",
		UserName:    "Sahip",
		EntityType:  EntitySystemData,
		Action:      models.AuditActionReset,
		Description: "Hareket verileri sıfırlandı",
		Details:     map[string]int{"orders": 3},
	})
	require.NoError(t, err)

	var log models.AuditLog
	require.NoError(t, db.First(&log).Error)
	assert.Equal(t, "u-1", log.UserID)
	assert.Equal(t, models.AuditActionReset, log.Action)
	assert.JSONEq(t, `{"orders":3}`, log.Details)

	require.NoError(t, WriteLog(db, LogOptions{Action: models.AuditActionBackup}))
	var second models.AuditLog
	require.NoError(t, db.Last(&second).Error)
	assert.Equal(t, "null", second.Details)
}

func TestListAuditLogsHandler(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, WriteLog(db, LogOptions{UserID: "u-1", Action: models.AuditActionBackup}))
	require.NoError(t, WriteLog(db, LogOptions{UserID: "u-1", Action: models.AuditActionRestore}))
	require.NoError(t, WriteLog(db, LogOptions{UserID: "u-2", Action: models.AuditActionRestore}))

	app := fiber.New()
	app.Get("/audit-logs", ListAuditLogsHandler(db))

	resp, err := app.Test(httptest.NewRequest("GET", "/audit-logs?action=restore", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)

	var logs []AuditLogResponse
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, models.AuditActionRestore, l.Action)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/audit-logs?limit=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
