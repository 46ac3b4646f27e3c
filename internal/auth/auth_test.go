package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/maintenance"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Get("/setup", SetupStatusHandler(db))
	app.Post("/setup", SetupHandler(db, testSecret))
	app.Post("/login", LoginHandler(db, testSecret))

	protected := app.Group("", JWTMiddleware(db, testSecret))
	protected.Get("/me", MeHandler(db))
	protected.Get("/owner-only", RequireRole(models.RoleOwner), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	protected.Get("/staff-only", RequireRole(models.RoleStaff), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest))
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSetupCreatesOwnerOnce(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)

	setup := SetupRequest{Name: "Sahip", Email: " Owner@Example.com ", Password: "gizli-sifre", BusinessName: "Kafe"}
	resp := postJSON(t, app, "/setup", setup)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
		User  struct {
			Email string            `json:"email"`
			Roles []models.RoleName `json:"roles"`
		} `json:"user"`
	}
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "owner@example.com", out.User.Email)
	assert.Equal(t, []models.RoleName{models.RoleOwner}, out.User.Roles)

	var setting models.SystemSetting
	require.NoError(t, db.First(&setting, models.SystemSettingID).Error)
	assert.NotNil(t, setting.SetupCompletedAt)

	var roleCount int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roleCount).Error)
	assert.Equal(t, int64(3), roleCount)

	resp = postJSON(t, app, "/setup", setup)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var status map[string]any
	decode(t, get(t, app, "/setup", ""), &status)
	assert.Equal(t, true, status["setup_completed"])
}

func TestSetupValidation(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	resp := postJSON(t, app, "/setup", SetupRequest{Name: "Sahip", Email: "not-an-email", Password: "gizli-sifre"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/setup", SetupRequest{Name: "Sahip", Email: "owner@example.com", Password: "kisa"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginAndRoleGate(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)
	require.Equal(t, fiber.StatusCreated, postJSON(t, app, "/setup",
		SetupRequest{Name: "Sahip", Email: "owner@example.com", Password: "gizli-sifre"}).StatusCode)

	resp := postJSON(t, app, "/login", LoginRequest{Email: "owner@example.com", Password: "yanlis"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/login", LoginRequest{Email: "owner@example.com", Password: "gizli-sifre"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)

	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", out.Token).StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/owner-only", out.Token).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/staff-only", out.Token).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/owner-only", "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/owner-only", "bozuk.token").StatusCode)
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := &models.User{ID: "u-1", Name: "Ali", Email: "ali@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	session, err := CreateSession(db, user.ID)
	require.NoError(t, err)

	token, err := GenerateToken(testSecret, user, session, []models.RoleName{models.RoleAdmin})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", JWTMiddleware(db, testSecret), func(c *fiber.Ctx) error {
		id, name := Actor(c)
		return c.JSON(fiber.Map{"id": id, "name": name, "roles": c.Locals(CtxUserRolesKey)})
	})

	var out map[string]any
	decode(t, get(t, app, "/", token), &out)
	assert.Equal(t, "u-1", out["id"])
	assert.Equal(t, "Ali", out["name"])
	assert.Equal(t, []any{"ADMIN"}, out["roles"])

	// Farklı anahtarla imzalanmış token reddedilir
	other, err := GenerateToken("ffffffffffffffffffffffffffffffff", user, session, nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/", other).StatusCode)

	// Kaydı olmayan oturum
	orphan, err := GenerateToken(testSecret, user, &models.Session{
		ID: "yok", ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/", orphan).StatusCode)

	// Oturum silinince token geçersiz olur
	require.NoError(t, db.Delete(&models.Session{}, "id = ?", session.ID).Error)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/", token).StatusCode)
}

func TestLoginCreatesSession(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)
	require.Equal(t, fiber.StatusCreated, postJSON(t, app, "/setup",
		SetupRequest{Name: "Sahip", Email: "owner@example.com", Password: "gizli-sifre"}).StatusCode)
	require.Equal(t, fiber.StatusOK, postJSON(t, app, "/login",
		LoginRequest{Email: "owner@example.com", Password: "gizli-sifre"}).StatusCode)

	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Count(&sessions).Error)
	assert.Equal(t, int64(2), sessions)
}

func TestFactoryResetRevokesTokens(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(db)
	setup := SetupRequest{Name: "Sahip", Email: "owner@example.com", Password: "gizli-sifre"}
	require.Equal(t, fiber.StatusCreated, postJSON(t, app, "/setup", setup).StatusCode)

	resp := postJSON(t, app, "/login", LoginRequest{Email: "owner@example.com", Password: "gizli-sifre"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	require.Equal(t, fiber.StatusOK, get(t, app, "/owner-only", out.Token).StatusCode)

	_, err := maintenance.FactoryResetSystemData(context.Background(), db)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/owner-only", out.Token).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", out.Token).StatusCode)

	// Yeni kurulum yapılabilir, eski token yine reddedilir
	require.Equal(t, fiber.StatusCreated, postJSON(t, app, "/setup", setup).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/owner-only", out.Token).StatusCode)
}

func TestSetupLocksSettingRow(t *testing.T) {
	// Bağlantı kurulmaz, sadece üretilen SQL kontrol edilir
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=pos dbname=pos sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var setting models.SystemSetting
		return lockedSetting(tx, &setting)
	})
	assert.Contains(t, sql, `FROM "system_settings"`)
	assert.Contains(t, sql, "FOR UPDATE")
}
