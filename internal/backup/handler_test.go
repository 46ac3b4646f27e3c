package backup

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pos-backend/internal/auth"
	"pos-backend/internal/database"
	"pos-backend/internal/maintenance"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db  *gorm.DB
	app *fiber.App
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "backup.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	store, err := NewLocalStore(filepath.Join(t.TempDir(), "archive"))
	require.NoError(t, err)

	h := NewHandler(maintenance.New(db, zerolog.Nop()), NewArchive(db, store), zerolog.Nop())

	app := fiber.New()
	// JWT yerine sabit kullanıcı
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, "u-1")
		c.Locals(auth.CtxUserNameKey, "Sahip")
		c.Locals(auth.CtxUserRolesKey, []models.RoleName{models.RoleOwner})
		return c.Next()
	})
	app.Get("/backup", h.DownloadHandler())
	app.Get("/backup/export.xlsx", h.ExportWorkbookHandler())
	app.Get("/backups", h.ListHandler())
	app.Post("/backups/:id/restore", h.RestoreArchivedHandler())
	app.Post("/restore", h.RestoreUploadHandler())
	app.Post("/reset", h.ResetHandler())
	app.Post("/factory-reset", h.FactoryResetHandler())

	seed(t, db)
	return &testEnv{db: db, app: app}
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	created := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Category{ID: "cat-1", Name: "Drinks"}).Error)
	require.NoError(t, db.Create(&models.Product{ID: "prod-1", Name: "Latte", CategoryID: "cat-1", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.DiningTable{ID: "tbl-1", Name: "T1", Number: 1, IsOccupied: true}).Error)
	require.NoError(t, db.Create(&models.Order{
		ID: "ord-1", Code: "A-1", Type: models.OrderTypeDineIn, Status: models.OrderStatusPreparing,
		TableID: ptr("tbl-1"), Payment: models.PaymentMethodCash, CreatedAt: created, UpdatedAt: created,
	}).Error)
	require.NoError(t, db.Create(&models.OrderItem{ID: "oi-1", OrderID: "ord-1", ProductID: ptr("prod-1")}).Error)
}

func ptr[T any](v T) *T { return &v }

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonRequest(method, path string, body any) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func TestDownloadArchivesAndAudits(t *testing.T) {
	env := setupTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/backup", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "pos-backup-")

	snapshot, err := maintenance.DecodeSnapshot(body)
	require.NoError(t, err)
	assert.Len(t, snapshot.Data.Orders, 1)

	var record models.BackupRecord
	require.NoError(t, env.db.First(&record).Error)
	assert.Equal(t, resp.Header.Get("X-Backup-Id"), record.ID)
	assert.Equal(t, "local", record.Storage)
	assert.Equal(t, int64(len(body)), record.SizeBytes)
	require.NotNil(t, record.CreatedBy)
	assert.Equal(t, "u-1", *record.CreatedBy)

	var log models.AuditLog
	require.NoError(t, env.db.First(&log).Error)
	assert.Equal(t, models.AuditActionBackup, log.Action)
	assert.Equal(t, "Sahip", log.UserName)

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/backups", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var records []models.BackupRecord
	require.NoError(t, json.Unmarshal(body, &records))
	assert.Len(t, records, 1)
}

func TestRestoreFromArchive(t *testing.T) {
	env := setupTestEnv(t)

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/backup", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	id := resp.Header.Get("X-Backup-Id")

	require.NoError(t, env.db.Where("1 = 1").Delete(&models.OrderItem{}).Error)
	require.NoError(t, env.db.Where("1 = 1").Delete(&models.Order{}).Error)

	resp, body := env.do(t, httptest.NewRequest(http.MethodPost, "/backups/"+id+"/restore", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, int64(1), env.count(t, &models.Order{}))
	assert.Equal(t, int64(1), env.count(t, &models.OrderItem{}))

	resp, _ = env.do(t, httptest.NewRequest(http.MethodPost, "/backups/yok/restore", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRestoreUpload(t *testing.T) {
	env := setupTestEnv(t)
	_, raw := env.do(t, httptest.NewRequest(http.MethodGet, "/backup", nil))

	t.Run("raw json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader(raw))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, body := env.do(t, req)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

		var out struct {
			Report maintenance.RestoreReport `json:"report"`
		}
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, 1, out.Report.Collections[maintenance.CollectionOrders].Inserted)
	})

	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "backup.json")
		require.NoError(t, err)
		_, err = part.Write(raw)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/restore", &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		resp, body := env.do(t, req)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	})

	t.Run("invalid file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader([]byte(`{"version":1}`)))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := env.do(t, req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		// Geçersiz dosya veriye dokunmaz
		assert.Equal(t, int64(1), env.count(t, &models.Order{}))
	})

	var restores int64
	require.NoError(t, env.db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionRestore).Count(&restores).Error)
	assert.Equal(t, int64(2), restores)
}

func TestResetHandler(t *testing.T) {
	env := setupTestEnv(t)

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/reset", ResetRequest{Scope: "transactions", Confirm: "evet"}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = env.do(t, jsonRequest(http.MethodPost, "/reset", ResetRequest{Scope: "all", Confirm: ResetConfirmation}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int64(1), env.count(t, &models.Order{}))

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/reset", ResetRequest{Scope: "transactions", Confirm: ResetConfirmation}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var result maintenance.ResetResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, int64(1), result.Deleted["orders"])
	assert.Zero(t, env.count(t, &models.Order{}))
	assert.Equal(t, int64(1), env.count(t, &models.Product{}))

	var table models.DiningTable
	require.NoError(t, env.db.First(&table, "id = ?", "tbl-1").Error)
	assert.False(t, table.IsOccupied)

	assert.Equal(t, int64(1), env.count(t, &models.AuditLog{}))
}

func TestFactoryResetHandler(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.db.Create(&models.User{Name: "Sahip", Email: "owner@example.com", PasswordHash: "x"}).Error)

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/factory-reset", FactoryResetRequest{Confirm: "factory reset"}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int64(1), env.count(t, &models.User{}))

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/factory-reset", FactoryResetRequest{Confirm: FactoryResetConfirmation}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Zero(t, env.count(t, &models.User{}))
	assert.Zero(t, env.count(t, &models.Product{}))
	assert.Zero(t, env.count(t, &models.AuditLog{}))
}

func TestExportWorkbookHandler(t *testing.T) {
	env := setupTestEnv(t)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/backup/export.xlsx", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	// xlsx bir zip arşividir
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))
}
